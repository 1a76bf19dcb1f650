package taskform

import (
	"html/template"
	"io"
)

const navBarTmpl = `{{define "navbar"}}
<nav class="navbar">
  <div class="navbar-inner">
    <button class="new-chat" type="button">✚ <span>New Chat</span></button>
    <div class="avatar" title="User">👤</div>
  </div>
</nav>
{{end}}`

const pageTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Operational Research NLP Agent</title>
<style>
  body { margin: 0; min-height: 100vh; display: flex; flex-direction: column; font-family: system-ui, sans-serif; background: linear-gradient(135deg, #f8fafc, #eef2ff); }
  .navbar { background: linear-gradient(90deg, #0f172a, #1e293b, #0f172a); border-bottom: 1px solid #334155; }
  .navbar-inner { max-width: 80rem; margin: 0 auto; height: 4rem; display: flex; align-items: center; justify-content: flex-end; gap: 1rem; padding: 0 1rem; }
  .new-chat { background: #2563eb; color: #fff; border: 0; border-radius: .5rem; padding: .5rem 1rem; }
  .avatar { width: 2.25rem; height: 2.25rem; border-radius: 50%; background: #334155; display: flex; align-items: center; justify-content: center; }
  main { flex: 1; display: flex; flex-direction: column; align-items: center; justify-content: center; padding: 1.5rem; }
  h1 { font-size: 3rem; color: #1e293b; text-align: center; }
  h1 span { display: block; color: #6d28d9; }
  p { color: #475569; max-width: 42rem; text-align: center; }
  form { position: relative; width: 100%; max-width: 48rem; }
  textarea { width: 100%; min-height: 120px; padding: 1.5rem 4rem 1.5rem 1.5rem; font-size: 1.125rem; border: 2px solid #e2e8f0; border-radius: 1rem; box-sizing: border-box; resize: none; }
  button[type=submit] { position: absolute; right: 1rem; bottom: 1rem; width: 3rem; height: 3rem; border: 0; border-radius: .75rem; background: #4f46e5; color: #fff; }
  button[type=submit]:disabled { background: #94a3b8; cursor: not-allowed; }
</style>
</head>
<body>
{{template "navbar"}}
<main>
  <h1>Operational Research <span>NLP Agent</span></h1>
  <p>Harness the power of advanced natural language processing for your operational research needs.
     Ask questions, analyze data, and get insights instantly.</p>
  <form id="task">
    <textarea id="query" rows="4" placeholder="Initiate a query or send a command to the AI...">{{.State.Text}}</textarea>
    <button type="submit" id="send"{{if not .State.CanSubmit}} disabled{{end}}>{{if .State.Busy}}…{{else}}➤{{end}}</button>
  </form>
</main>
<script>
(function () {
  var endpoint = {{.Endpoint}};
  var query = document.getElementById("query");
  var send = document.getElementById("send");
  var busy = {{.State.Busy}};

  function show(state) {
    busy = state.busy;
    query.value = state.text;
    send.disabled = !state.canSubmit;
    send.textContent = state.busy ? "…" : "➤";
  }

  function poll() {
    fetch(endpoint).then(function (r) { return r.json(); }).then(function (state) {
      show(state);
      if (state.busy) {
        setTimeout(poll, 250);
      }
    });
  }

  query.addEventListener("input", function () {
    send.disabled = busy || query.value.trim() === "";
  });

  document.getElementById("task").addEventListener("submit", function (e) {
    e.preventDefault();
    fetch(endpoint, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify({query: query.value})})
      .then(function (r) { return r.json(); })
      .then(function (state) {
        show(state);
        if (state.busy) {
          setTimeout(poll, 250);
        }
      });
  });
})();
</script>
</body>
</html>
`

var page = template.Must(template.New("task").Parse(navBarTmpl + pageTmpl))

// RenderPage writes the task page with its navigation bar.
func RenderPage(w io.Writer, endpoint string, f *Form) error {
	return page.Execute(w, struct {
		Endpoint string
		State    State
	}{endpoint, f.State()})
}
