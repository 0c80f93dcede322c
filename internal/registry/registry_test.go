package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

type stubGame struct {
	id   string
	opts Options
	err  error
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Description() string { return "a stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func (g *stubGame) Configure(opts Options) error {
	g.opts = opts
	return g.err
}

func TestRegisterListCreate(t *testing.T) {
	Register("test_zeta", func() Game { return &stubGame{id: "test_zeta"} })
	Register("test_alpha", func() Game { return &stubGame{id: "test_alpha"} })

	if !Exists("test_alpha") || Exists("test_missing") {
		t.Error("Exists reports wrong membership")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test_") {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID || info.Description != "a stub" {
				t.Errorf("info = %+v, expected title and description from the game", info)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "test_alpha" || ids[1] != "test_zeta" {
		t.Errorf("List() ids = %v, expected sorted [test_alpha test_zeta]", ids)
	}

	g, err := Create("test_alpha")
	if err != nil || g.ID() != "test_alpha" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("test_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}

func TestConfigure(t *testing.T) {
	g := &stubGame{id: "cfg"}
	if err := Configure(g, Options{Difficulty: "hard"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if g.opts.Difficulty != "hard" {
		t.Errorf("options not forwarded: %+v", g.opts)
	}

	g.err = errors.New("boom")
	err := Configure(g, Options{})
	if err == nil || !strings.Contains(err.Error(), "cfg") {
		t.Errorf("Configure error = %v, expected wrapped error naming the game", err)
	}
}
