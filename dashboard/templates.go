package dashboard

const pageTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Maritime Route Optimization</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; background: linear-gradient(135deg, #eff6ff, #ecfeff); color: #111827; }
  main { max-width: 80rem; margin: 0 auto; padding: 1.5rem; }
  h1 { font-size: 2.25rem; margin: 0 0 .75rem; }
  .lead { color: #374151; font-size: 1.125rem; margin-bottom: 2rem; }
  .card { background: #fff; border: 1px solid #e5e7eb; border-radius: .75rem; padding: 1.5rem; margin-bottom: 2rem; box-shadow: 0 10px 15px -3px rgba(0,0,0,.1); }
  .chart-box { height: 500px; }
  .controls { display: grid; grid-template-columns: repeat(auto-fill, minmax(20rem, 1fr)); gap: 1.5rem; }
  .control { background: #f9fafb; border-radius: .5rem; padding: 1rem; border-left: 4px solid var(--accent); }
  .control header { display: flex; justify-content: space-between; align-items: center; font-size: .875rem; }
  .control .value { font-weight: bold; padding: .25rem .5rem; border-radius: .25rem; background: #f3f4f6; }
  .control input { width: 100%; margin-top: .75rem; }
  .bounds { display: flex; justify-content: space-between; font-size: .75rem; color: #6b7280; margin-top: .5rem; }
  .buttons { margin-top: 2rem; padding-top: 1.5rem; border-top: 1px solid #e5e7eb; display: flex; gap: 1rem; }
  button { padding: .75rem 1.5rem; border: 0; border-radius: .5rem; color: #fff; font-weight: 500; cursor: pointer; }
  #reset { background: #4b5563; }
  #refresh { background: #2563eb; }
  #weather { background: #0891b2; }
  .summary { display: grid; grid-template-columns: repeat(auto-fill, minmax(12rem, 1fr)); gap: 1rem; }
  .summary div { background: #f9fafb; border-radius: .5rem; padding: 1rem; }
  .summary span { display: block; font-size: 1.5rem; font-weight: bold; }
</style>
</head>
<body>
<main>
  <h1>🚢 Maritime Route Optimization</h1>
  <p class="lead">Multi-constraint analysis showing how each parameter varies along the shipping route</p>

  <div class="card"><div class="chart-box"><canvas id="route-chart"></canvas></div></div>

  <div class="card summary">
    <div>Total Distance<span id="totalDistance">-</span></div>
    <div>Estimated Time<span id="estimatedTime">-</span></div>
    <div>Fuel Cost<span id="fuelCost">-</span></div>
    <div>Cargo Revenue<span id="cargoRevenue">-</span></div>
    <div>Great Circle<span id="greatCircle">-</span></div>
  </div>

  <div class="card">
    <h2>⚙️ Vessel &amp; Route Parameters</h2>
    <div class="controls">
    {{- range .Controls}}
      <div class="control" style="--accent: {{accent .Color}}">
        <header>
          <label for="{{.Name}}">{{.Icon}} {{.Label}}</label>
          <span class="value" id="{{.Name}}-value">{{.Formatted}}</span>
        </header>
        <input type="range" id="{{.Name}}" name="{{.Name}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}">
        <div class="bounds"><span>{{.FormattedMin}}</span><span>{{.FormattedMax}}</span></div>
      </div>
    {{- end}}
    </div>
    <div class="buttons">
      <button id="reset">🔄 Reset to Defaults</button>
      <button id="refresh">📊 Refresh Analysis</button>
      {{- if .Weather}}
      <button id="weather">🌊 Apply Forecast</button>
      {{- end}}
    </div>
  </div>
</main>
<script>
(function () {
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + {{.SocketPath}});
  var charts = {};

  function send(action) {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(action));
    }
  }

  function showControl(c) {
    var input = document.getElementById(c.name);
    if (input && document.activeElement !== input) {
      input.value = c.value;
    }
    var value = document.getElementById(c.name + "-value");
    if (value) {
      value.textContent = c.formatted;
    }
  }

  function showSummary(s) {
    var units = {totalDistance: " nm", estimatedTime: " h", fuelCost: "", cargoRevenue: "", greatCircle: " nm"};
    Object.keys(units).forEach(function (key) {
      var el = document.getElementById(key);
      if (el) {
        var prefix = units[key] === "" ? "$" : "";
        el.textContent = prefix + s[key].toLocaleString("en-US") + units[key];
      }
    });
  }

  ws.onmessage = function (event) {
    var m = JSON.parse(event.data);
    switch (m.type) {
    case "create":
      var canvas = document.getElementById("route-chart");
      var ctx = canvas && canvas.getContext("2d");
      if (!ctx) {
        return;
      }
      charts[m.chart] = new Chart(ctx, m.config);
      break;
    case "update":
      if (charts[m.chart]) {
        charts[m.chart].data = m.data;
        charts[m.chart].update(m.mode);
      }
      break;
    case "destroy":
      if (charts[m.chart]) {
        charts[m.chart].destroy();
        delete charts[m.chart];
      }
      break;
    case "panel":
      m.controls.forEach(showControl);
      if (m.summary) {
        showSummary(m.summary);
      }
      break;
    case "error":
      console.warn(m.error);
      break;
    }
  };

  window.addEventListener("beforeunload", function () {
    Object.keys(charts).forEach(function (id) { charts[id].destroy(); });
    ws.close();
  });

  document.querySelectorAll("input[type=range]").forEach(function (input) {
    input.addEventListener("input", function () {
      send({action: "set", name: input.name, value: parseFloat(input.value)});
    });
  });
  document.getElementById("reset").addEventListener("click", function () { send({action: "reset"}); });
  document.getElementById("refresh").addEventListener("click", function () { send({action: "refresh"}); });
  var weather = document.getElementById("weather");
  if (weather) {
    weather.addEventListener("click", function () { send({action: "weather"}); });
  }
})();
</script>
</body>
</html>
`
