package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range Names() {
		data, err := Load("embed:" + name)
		if err != nil {
			t.Fatalf("Load(%s) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%s) returned no bytes", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("Inter-Regular"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}
