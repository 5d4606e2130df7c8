package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRole(t *testing.T) {
	assert.True(t, AllowedRole(ManageHorses, "manager"))
	assert.False(t, AllowedRole(ManageHorses, "member"))
	assert.True(t, AllowedRole(ManageFinancials, "finance"))
	assert.False(t, AllowedRole(ManageTaxDocuments, "finance"))
	assert.False(t, AllowedRole("unknown_permission", "admin"))
	assert.True(t, AllowedRole(ViewTaxDocuments, "manager"))
	assert.False(t, AllowedRole(ViewAnyTaxDocuments, "manager"))
}
