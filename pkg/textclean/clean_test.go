package textclean

import "testing"

func TestClean(t *testing.T) {
	cases := map[string]string{
		"José Ñúñez":           "Jose Nunez",
		"Peña & Asociados":     "Pena & Asociados",
		"GERENTE DE OPERACIÓN": "GERENTE DE OPERACION",
		"Müller":               "Muller",
		"plain text 123":       "plain text 123",
		"":                     "",
	}
	for in, want := range cases {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}
