package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		DisableDebugModules(ModuleMaskAll)
	})
	return &buf
}

func TestModuleDebugMask(t *testing.T) {
	buf := captureLogs(t)

	ModTracker.DebugZ("hidden").End()
	if buf.Len() != 0 {
		t.Fatalf("debug log emitted with module disabled: %q", buf.String())
	}

	EnableDebugModules(ModTracker.Mask())
	ModTracker.DebugZ("shown").Hex16("addr", 0x12ab).Uint8("ch", 3).End()
	ModSynth.DebugZ("other module").End()

	out := buf.String()
	for _, want := range []string{"shown", "addr=12ab", "ch=3", "_mod=tracker"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "other module") {
		t.Errorf("synth debug log emitted: %q", out)
	}
}

func TestWarningsAlwaysOn(t *testing.T) {
	buf := captureLogs(t)

	ModAudio.WarnZ("queue failed").Error("err", errors.New("boom")).Duration("after", 2*time.Second).End()
	ModSong.Warnf("bad %s", "song")

	out := buf.String()
	for _, want := range []string{"queue failed", "err=boom", "after=2s", "bad song", "_mod=song"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestNilEntryZ(t *testing.T) {
	var e *EntryZ
	e.String("k", "v").Int("n", 1).Bool("b", true).End()
}

func TestModuleNames(t *testing.T) {
	for _, name := range []string{"emu", "synth", "tracker", "audio", "song"} {
		mod, ok := ModuleByName(name)
		if !ok || mod.String() != name {
			t.Errorf("ModuleByName(%q) = %v, %t", name, mod, ok)
		}
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName(<error>) found")
	}

	mod := NewModule("custom")
	if got, ok := ModuleByName("custom"); !ok || got != mod {
		t.Errorf("ModuleByName(custom) = %v, %t, want %v", got, ok, mod)
	}
}

func TestZFieldValue(t *testing.T) {
	tests := []struct {
		f    ZField
		want string
	}{
		{ZField{Type: FieldTypeHex8, Integer: 0xa}, "0a"},
		{ZField{Type: FieldTypeHex32, Integer: 0xbeef}, "0000beef"},
		{ZField{Type: FieldTypeInt, Integer: uint64(^uint64(0))}, "-1"},
		{ZField{Type: FieldTypeError}, "<nil>"},
		{ZField{Type: FieldTypeStringer, Interface: ModAudio}, "audio"},
	}
	for _, tt := range tests {
		if got := tt.f.Value(); got != tt.want {
			t.Errorf("Value() = %q, want %q", got, tt.want)
		}
	}
}
