// Package viewer renders the accumulated page records into a single
// self-contained HTML gallery. The document embeds the records as inline
// JSON and navigates entirely client-side, so a partially crawled session
// is always browsable from disk.
package viewer

import (
	"fmt"
	"html/template"
	"os"
)

// Generate overwrites path with the gallery document. pagesJSON is the
// pretty-printed JSON array of page records, the same bytes written to the
// metadata file; an empty or nil value renders the "no images" state.
func Generate(path, title string, pagesJSON []byte) error {
	data := string(pagesJSON)
	if data == "" || data == "null" {
		data = "[]"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}

	execErr := page.Execute(f, viewModel{
		Title: title,
		Pages: template.JS(data),
	})
	closeErr := f.Close()

	if execErr != nil {
		return fmt.Errorf("viewer: %w", execErr)
	}
	if closeErr != nil {
		return fmt.Errorf("viewer: %w", closeErr)
	}
	return nil
}

type viewModel struct {
	Title string
	Pages template.JS
}

var page = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #111; color: #ddd; font-family: sans-serif; }
  header { display: flex; align-items: center; gap: 1rem; padding: .5rem 1rem; background: #1b1b1b; }
  header h1 { font-size: 1rem; margin: 0; flex: 1; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
  button, select { background: #2a2a2a; color: #ddd; border: 1px solid #444; padding: .3rem .7rem; cursor: pointer; }
  main { display: flex; flex-direction: column; align-items: center; padding: 1rem; }
  figure { margin: 0; text-align: center; }
  img#pic { max-width: 95vw; max-height: 80vh; }
  figcaption { margin-top: .8rem; max-width: 60rem; white-space: pre-wrap; }
  #empty { margin-top: 3rem; color: #888; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <button id="prev" title="previous page">&#8592;</button>
  <select id="jump" title="jump to page"></select>
  <button id="next" title="next page">&#8594;</button>
  <button id="fs" title="toggle fullscreen">&#x26F6;</button>
</header>
<main>
  <figure id="frame" hidden>
    <img id="pic" alt="">
    <figcaption id="caption"></figcaption>
  </figure>
  <p id="empty" hidden>no images</p>
</main>
<script>
const pages = {{.Pages}};

const pic = document.getElementById('pic');
const caption = document.getElementById('caption');
const frame = document.getElementById('frame');
const jump = document.getElementById('jump');
const empty = document.getElementById('empty');

let idx = 0;

function hashIndex() {
  const frag = decodeURIComponent(location.hash.slice(1));
  if (!frag) return -1;
  return pages.findIndex(p => p.pageNumber === frag);
}

function show(i) {
  if (!pages.length) return;
  idx = ((i % pages.length) + pages.length) % pages.length;
  const p = pages[idx];
  if (p.imageFilename) {
    pic.src = 'pics/' + p.imageFilename;
    pic.hidden = false;
  } else {
    pic.removeAttribute('src');
    pic.hidden = true;
  }
  pic.alt = p.description || '';
  caption.textContent = p.description || '';
  jump.value = String(idx);
  location.hash = encodeURIComponent(p.pageNumber);
}

function toggleFullscreen() {
  if (document.fullscreenElement) {
    document.exitFullscreen();
  } else {
    document.documentElement.requestFullscreen();
  }
}

document.getElementById('prev').addEventListener('click', () => show(idx - 1));
document.getElementById('next').addEventListener('click', () => show(idx + 1));
document.getElementById('fs').addEventListener('click', toggleFullscreen);
jump.addEventListener('change', () => show(parseInt(jump.value, 10)));

document.addEventListener('keydown', e => {
  if (e.key === 'ArrowLeft') show(idx - 1);
  else if (e.key === 'ArrowRight') show(idx + 1);
  else if (e.key === 'f' || e.key === 'F') toggleFullscreen();
});

if (!pages.length) {
  empty.hidden = false;
} else {
  frame.hidden = false;
  pages.forEach((p, i) => {
    const o = document.createElement('option');
    o.value = String(i);
    o.textContent = p.pageNumber;
    jump.appendChild(o);
  });
  const h = hashIndex();
  show(h >= 0 ? h : 0);
}
</script>
</body>
</html>
`))
