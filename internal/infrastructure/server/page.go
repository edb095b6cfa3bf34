package server

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>byteagent</title>
<style>
body { font-family: monospace; max-width: 48rem; margin: 2rem auto; }
#log { white-space: pre-wrap; border: 1px solid #ccc; padding: 0.5rem; min-height: 12rem; }
input { width: 80%; }
</style>
</head>
<body>
<h1>byteagent</h1>
<div id="log"></div>
<form id="console">
<input name="cmd" autocomplete="off" autofocus placeholder="find pdf files">
<button type="submit">Run</button>
</form>
<script>
const form = document.getElementById("console");
const log = document.getElementById("log");
form.addEventListener("submit", async (event) => {
  event.preventDefault();
  const data = new FormData(form);
  const res = await fetch("/command", { method: "POST", body: new URLSearchParams(data) });
  const body = await res.json();
  log.textContent += "> " + data.get("cmd") + "\n" + body.output + "\n";
  form.reset();
});
</script>
</body>
</html>
`
