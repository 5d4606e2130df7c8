package health

import (
	"bytes"
	"html/template"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Go For Glory Stable · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --green: #2d5016; --gold: #c9a227; --bg: #f7f6f2; --muted: #64748b; }
    body { background: var(--bg); color: var(--green); font-family: Georgia, serif; margin: 0; padding: 40px 20px; }
    .card { max-width: 900px; margin: 0 auto; background: #fff; border-radius: 16px; box-shadow: 0 20px 60px -20px rgba(45,80,22,.25); overflow: hidden; }
    h1 { margin: 0; padding: 32px 40px 8px; font-size: 36px; }
    h1.issue { color: #b91c1c; }
    .sub { padding: 0 40px 24px; color: var(--muted); }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); border-top: 1px solid #eee; }
    .col { padding: 28px 40px; border-right: 1px solid #eee; }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; letter-spacing: 2px; color: var(--muted); margin-bottom: 16px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; }
    .ok { color: var(--green); font-weight: bold; }
    .err { color: #b91c1c; font-weight: bold; }
    .foot { background: rgba(45,80,22,.04); padding: 16px 40px; font-family: monospace; font-size: 13px; }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; } }
  </style>
</head>
<body>
  <div class="card">
    {{if eq .Status "ok"}}<h1>All Systems Operational</h1>{{else}}<h1 class="issue">System Issues Detected</h1>{{end}}
    <div class="sub">Go For Glory Stable API · {{.Runtime.Platform}} · {{.Runtime.GoVersion}}</div>
    <div class="grid">
      <div class="col">
        <div class="label">Traffic</div>
        <div class="row"><span>Requests</span><span>{{.Traffic.TotalRequests}}</span></div>
        <div class="row"><span>Successful</span><span>{{.Traffic.SuccessCount}}</span></div>
        <div class="row"><span>Failed</span><span>{{.Traffic.FailedCount}}</span></div>
        <div class="row"><span>Success Rate</span><span>{{.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Avg Latency</span><span>{{.Traffic.AvgResponseTime}} ms</span></div>
      </div>
      <div class="col">
        <div class="label">Runtime</div>
        <div class="row"><span>Uptime</span><span>{{.Runtime.UptimeSeconds}} s</span></div>
        <div class="row"><span>Heap</span><span>{{.Runtime.Memory.HeapUsed}} MB</span></div>
        <div class="row"><span>Alloc</span><span>{{.Runtime.Memory.Alloc}} MB</span></div>
        <div class="row"><span>Goroutines</span><span>{{.Runtime.Goroutines}}</span></div>
      </div>
      <div class="col">
        <div class="label">Dependencies</div>
        {{range $name, $dep := .Dependencies}}
        <div class="row"><span>{{$name}}</span><span class="{{if or (eq $dep.Status "connected") (eq $dep.Status "reachable")}}ok{{else}}err{{end}}">{{$dep.Status}}{{with $dep.PingMs}} · {{.}} ms{{end}}</span></div>
        {{end}}
      </div>
    </div>
    {{with .Traffic.LastRequest}}<div class="foot">LAST INBOUND {{index . "method"}} {{index . "path"}}</div>{{end}}
  </div>
</body>
</html>`))

// RenderDashboard renders the status page for GET /health/status.
func RenderDashboard(result CollectResult) (string, error) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}
