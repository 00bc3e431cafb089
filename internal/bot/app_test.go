package bot

import (
	"strings"
	"testing"

	coreconfig "github.com/pamnard/TaroBot/core/config"
	coretelegram "github.com/pamnard/TaroBot/core/telegram"
	"github.com/pamnard/TaroBot/internal/reading"
)

func newWiringApp() *App {
	return &App{cfg: &coreconfig.Config{}}
}

func TestRegisterHandlersWiresCommandsAndCallbacks(t *testing.T) {
	a := newWiringApp()
	reg := coretelegram.NewRegistry()
	if err := a.registerHandlers(reg); err != nil {
		t.Fatalf("registerHandlers error: %v", err)
	}

	for _, name := range []string{"/start", "/help", "/new", "/stats"} {
		if _, _, ok := reg.LookupCommand(name); !ok {
			t.Errorf("command %s not registered", name)
		}
	}
	for _, key := range []string{cbAsk, cbNext} {
		if _, ok := reg.GetCallback(key); !ok {
			t.Errorf("callback %q not registered", key)
		}
	}

	// /stats stays out of the public command menu.
	for _, cmd := range reg.ListCommands(true) {
		if cmd.Text == "stats" {
			t.Error("/stats leaked into the visible command list")
		}
	}
}

func TestBuildRoutesCoversAllEndpoints(t *testing.T) {
	a := newWiringApp()
	reg := coretelegram.NewRegistry()
	if err := a.registerHandlers(reg); err != nil {
		t.Fatalf("registerHandlers error: %v", err)
	}
	routes := a.buildRoutes(reg)

	// 4 commands + 1 callback + 1 text + 6 media endpoints.
	if len(routes) != 12 {
		t.Errorf("route count = %d, want 12", len(routes))
	}
	for _, r := range routes {
		if r.Endpoint == nil || r.Handler == nil {
			t.Errorf("incomplete route: %+v", r)
		}
	}
}

func TestCardCaptionLeadsWithName(t *testing.T) {
	got := cardCaption(reading.Entry{
		Card: &reading.CardRef{Name: "The Star", Image: "https://example/ar17.jpg"},
		Text: "Hope returns.",
	})
	if !strings.HasPrefix(got, "*The Star*") || !strings.Contains(got, "Hope returns.") {
		t.Errorf("caption = %q", got)
	}
}

func TestCaptionEscapesGeneratedMarkdown(t *testing.T) {
	got := cardCaption(reading.Entry{
		Card: &reading.CardRef{Name: "Justice"},
		Text: "truth *cuts* both_ways",
	})
	if !strings.Contains(got, `\*cuts\*`) || !strings.Contains(got, `both\_ways`) {
		t.Errorf("generated text not escaped: %q", got)
	}
	// The name styling itself stays intact.
	if !strings.HasPrefix(got, "*Justice*") {
		t.Errorf("caption = %q", got)
	}
}
