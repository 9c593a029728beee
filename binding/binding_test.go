package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"breakpoint":    7,
		"totalDemerits": 2700,
		"potentials": []any{
			map[string]any{"previousBreakpoint": 1, "demerits": 2600},
		},
	}

	tests := []struct {
		template string
		want     string
	}{
		{"${breakpoint}", "7"},
		{"@@${ breakpoint } t=${totalDemerits}", "@@7 t=2700"},
		{"${potentials[0].demerits}", "2600"},
		{"${potentials[3].demerits}", "${potentials[3].demerits}"},
		{"${missing}", "${missing}"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Interpolate(tt.template, data); got != tt.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${breakpoint}", nil); got != "${breakpoint}" {
		t.Fatalf("nil data should leave template untouched, got %q", got)
	}
}

func TestLookupRejectsMalformedIndex(t *testing.T) {
	data := map[string]any{"list": []any{1, 2}}
	for _, path := range []string{"list[x]", "list[1", "list[0]x", ""} {
		if _, ok := Lookup(data, path); ok {
			t.Fatalf("Lookup(%q) should fail", path)
		}
	}
	if v, ok := Lookup(data, "list[1]"); !ok || v != 2 {
		t.Fatalf("Lookup(list[1]) = %v %v", v, ok)
	}
}
