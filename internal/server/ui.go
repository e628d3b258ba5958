package server

// indexHTML is the single-page UI: upload PDFs or ZIPs, then reorder,
// remove, sort, search and select rows before downloading the CSV.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PO PDF Extractor</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 1100px; color: #222; }
  h1 { font-size: 1.4rem; }
  #controls { display: flex; gap: 0.5rem; flex-wrap: wrap; margin: 1rem 0; align-items: center; }
  table { border-collapse: collapse; width: 100%; font-size: 0.85rem; }
  th, td { border: 1px solid #ccc; padding: 0.3rem 0.5rem; text-align: left; }
  th { background: #f0f0f0; cursor: pointer; user-select: none; }
  th .move { cursor: pointer; color: #888; padding: 0 0.2rem; }
  tr.selected { background: #e8f0fe; }
  #skipped { color: #a33; font-size: 0.85rem; }
  button { padding: 0.3rem 0.8rem; }
  input[type=search] { padding: 0.3rem; }
</style>
</head>
<body>
<h1>PO PDF Extractor</h1>
<p>Upload purchase order PDFs or a ZIP of PDFs. Click a header to sort, use the arrows to reorder columns, &times; to remove one, and click rows to select them for download.</p>

<form id="upload-form">
  <input type="file" id="files" name="files" multiple accept=".pdf,.zip">
  <button type="submit">Extract</button>
</form>

<div id="controls" hidden>
  <input type="search" id="search" placeholder="Search all columns">
  <button id="reset">Reset view</button>
  <button id="download">Download CSV</button>
  <span id="status"></span>
</div>
<div id="skipped"></div>
<div id="result"></div>

<script>
let tableId = null;
let columns = [];
let allColumns = [];
let sortCol = "";
let sortOrder = "asc";
let selected = new Set();

const $ = (id) => document.getElementById(id);

$("upload-form").addEventListener("submit", async (e) => {
  e.preventDefault();
  const files = $("files").files;
  if (!files.length) return;
  const form = new FormData();
  for (const f of files) form.append("files", f);
  const resp = await fetch("/api/upload", { method: "POST", body: form });
  const data = await resp.json();
  if (!resp.ok) { alert(data.error); return; }
  tableId = data.id;
  allColumns = data.columns.slice();
  columns = data.columns.slice();
  sortCol = ""; selected.clear();
  $("controls").hidden = false;
  renderSkipped(data.skipped);
  await refresh();
});

$("search").addEventListener("input", () => refresh());
$("reset").addEventListener("click", () => {
  columns = allColumns.slice();
  sortCol = ""; selected.clear();
  $("search").value = "";
  refresh();
});

$("download").addEventListener("click", async () => {
  const body = {
    columns: columns,
    sort: sortCol,
    order: sortOrder,
    query: $("search").value,
    rows: selected.size ? Array.from(selected).sort((a, b) => a - b) : [],
  };
  const resp = await fetch("/api/tables/" + tableId + "/download", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify(body),
  });
  if (!resp.ok) { alert("download failed"); return; }
  const blob = await resp.blob();
  const a = document.createElement("a");
  a.href = URL.createObjectURL(blob);
  a.download = "Extracted_Selected.csv";
  a.click();
  URL.revokeObjectURL(a.href);
});

async function refresh() {
  if (!tableId) return;
  const params = new URLSearchParams();
  if (columns.length) params.set("cols", columns.join(","));
  if (sortCol) { params.set("sort", sortCol); params.set("order", sortOrder); }
  const q = $("search").value;
  if (q) params.set("q", q);
  const resp = await fetch("/api/tables/" + tableId + "?" + params);
  if (!resp.ok) return;
  const data = await resp.json();
  renderTable(data);
  $("status").textContent = data.rows.length + " of " + data.total + " rows";
}

function renderSkipped(skipped) {
  if (!skipped || !skipped.length) { $("skipped").textContent = ""; return; }
  $("skipped").textContent = "Skipped: " +
    skipped.map((s) => s.path.split("/").pop() + " (" + s.reason + ")").join(", ");
}

function renderTable(data) {
  const tbl = document.createElement("table");
  const head = tbl.createTHead().insertRow();
  data.columns.forEach((col, i) => {
    const th = document.createElement("th");
    const arrow = col === sortCol ? (sortOrder === "asc" ? " ▲" : " ▼") : "";
    th.textContent = col + arrow;
    th.addEventListener("click", () => {
      if (sortCol === col) sortOrder = sortOrder === "asc" ? "desc" : "asc";
      else { sortCol = col; sortOrder = "asc"; }
      refresh();
    });
    th.appendChild(moveControl("←", () => moveColumn(i, -1)));
    th.appendChild(moveControl("→", () => moveColumn(i, 1)));
    th.appendChild(moveControl("×", () => { columns.splice(i, 1); selected.clear(); refresh(); }));
    head.appendChild(th);
  });
  const body = tbl.createTBody();
  data.rows.forEach((row, idx) => {
    const tr = body.insertRow();
    if (selected.has(idx)) tr.classList.add("selected");
    tr.addEventListener("click", () => {
      selected.has(idx) ? selected.delete(idx) : selected.add(idx);
      tr.classList.toggle("selected");
    });
    row.forEach((cell) => { tr.insertCell().textContent = cell; });
  });
  $("result").replaceChildren(tbl);
}

function moveControl(label, fn) {
  const span = document.createElement("span");
  span.className = "move";
  span.textContent = label;
  span.addEventListener("click", (e) => { e.stopPropagation(); fn(); });
  return span;
}

function moveColumn(i, delta) {
  const j = i + delta;
  if (j < 0 || j >= columns.length) return;
  [columns[i], columns[j]] = [columns[j], columns[i]];
  selected.clear();
  refresh();
}
</script>
</body>
</html>
`
