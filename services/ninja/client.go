package ninja

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"poemarket-backend/lib/browser"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// how long the network strategy stays subscribed to responses before
// collecting what it saw
const interceptWindow = time.Second * 3

// pageSource implements buildSource on top of an open browser session
// pointed at the builds page.
type pageSource struct {
	session *browser.Session
}

const nextDataScript = `window.__NEXT_DATA__ || null`

// EmbeddedBuilds reads the JSON blob the page's rendering framework
// injects for client-side hydration. The global is an optional
// capability of the page, so its absence is a normal branch rather
// than an error.
func (p pageSource) EmbeddedBuilds(ctx context.Context) ([]map[string]any, error) {
	var raw json.RawMessage
	err := p.session.Evaluate(nextDataScript, &raw)
	if err != nil {
		slog.DebugContext(ctx, "embedded data global not readable", "err", err)
		return nil, nil
	}
	return parseNextData(raw), nil
}

func parseNextData(raw json.RawMessage) []map[string]any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var data struct {
		Props struct {
			PageProps map[string]json.RawMessage `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}

	for _, key := range []string{"builds", "snapshot", "data"} {
		payload, ok := data.Props.PageProps[key]
		if !ok {
			continue
		}
		return flattenEmbedded(payload)
	}
	return nil
}

// flattenEmbedded accepts either a list of raw records or an object
// wrapping such a list under one of a few known keys.
func flattenEmbedded(payload json.RawMessage) []map[string]any {
	var list []map[string]any
	if err := json.Unmarshal(payload, &list); err == nil {
		return list
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}
	for _, key := range []string{"builds", "characters", "data", "items"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err == nil {
			return list
		}
	}
	return nil
}

// domBuildsScript walks the rendered build elements and extracts the
// text fields through a fallback chain of selectors per field. Capped
// at the first 100 elements; an element counts only if it carried at
// least a name or a class.
const domBuildsScript = `(() => {
	const getText = (el, selector) => {
		const node = el.querySelector(selector);
		return node ? node.textContent.trim() : null;
	};
	const picked = [];
	const elements = document.querySelectorAll('.build-card, .character-row, [class*="Build"], tr');
	for (const el of Array.from(elements).slice(0, 100)) {
		const build = {
			name: getText(el, '[class*="name"]') || getText(el, '.name'),
			class: getText(el, '[class*="class"]') || getText(el, '.class'),
			level: getText(el, '[class*="level"]') || getText(el, '.level'),
			skill: getText(el, '[class*="skill"]') || getText(el, '.skill'),
			dps: getText(el, '[class*="dps"]') || getText(el, '.dps'),
			life: getText(el, '[class*="life"]') || getText(el, '.life'),
			energy_shield: getText(el, '[class*="es"]') || getText(el, '.es'),
		};
		if (build.name || build.class) {
			picked.push(build);
		}
	}
	return picked;
})()`

func (p pageSource) DOMBuilds(ctx context.Context) ([]map[string]any, error) {
	var raw []map[string]any
	err := p.session.Evaluate(domBuildsScript, &raw)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// InterceptedBuilds subscribes to network responses for a bounded
// window and collects any JSON payload whose URL looks like build
// data. Malformed bodies are silently discarded; they do not abort
// the window.
func (p pageSource) InterceptedBuilds(ctx context.Context) ([]map[string]any, error) {
	bctx := p.session.Context()

	err := chromedp.Run(bctx, network.Enable())
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var captured []network.RequestID

	listenCtx, stopListening := context.WithCancel(bctx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev any) {
		res, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		url := res.Response.URL
		if !strings.Contains(url, "/api/data") && !strings.Contains(url, "/builds") {
			return
		}
		mu.Lock()
		captured = append(captured, res.RequestID)
		mu.Unlock()
		slog.DebugContext(ctx, "captured candidate response", "url", url)
	})

	select {
	case <-time.After(interceptWindow):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	stopListening()

	mu.Lock()
	ids := make([]network.RequestID, len(captured))
	copy(ids, captured)
	mu.Unlock()

	var out []map[string]any
	for _, id := range ids {
		var body []byte
		err := chromedp.Run(bctx, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			body, err = network.GetResponseBody(id).Do(ctx)
			return err
		}))
		if err != nil {
			slog.DebugContext(ctx, "failed to read intercepted body", "err", err)
			continue
		}
		out = append(out, flattenCaptured(body)...)
	}
	return out, nil
}

// flattenCaptured accepts a raw API payload: either a list of records
// or an object holding one under a builds/snapshot key. Anything else
// is dropped.
func flattenCaptured(body []byte) []map[string]any {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		return list
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil
	}
	for _, key := range []string{"builds", "snapshot"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err == nil {
			return list
		}
	}
	return nil
}
