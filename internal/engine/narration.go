package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/tatianab/timekeeper/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed narration.yaml
var narrationYAML []byte

var narration = mustLoadNarration(narrationYAML)

type fractureStatus struct {
	Name   string
	Healed bool
}

// narrationData is what narration templates see. The embedded state is the
// state before the narrated outcome was applied.
type narrationData struct {
	models.PlayerState
	Stability int
	Fractures []fractureStatus
	Reason    string
}

func newNarrationData(s models.PlayerState) narrationData {
	d := narrationData{PlayerState: s, Stability: 40}
	for _, f := range []struct {
		name string
		flag models.Flag
	}{
		{"Mechanical", models.FlagMechanicalFixed},
		{"Organic", models.FlagOrganicFixed},
		{"Elemental", models.FlagElementalFixed},
	} {
		healed := s.Flag(f.flag)
		if healed {
			d.Stability += 20
		}
		d.Fractures = append(d.Fractures, fractureStatus{Name: f.name, Healed: healed})
	}
	return d
}

func mustLoadNarration(data []byte) map[Outcome]*template.Template {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("parse narration catalog: %v", err))
	}
	out := make(map[Outcome]*template.Template, len(raw))
	for key, text := range raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(text)
		if err != nil {
			panic(fmt.Sprintf("parse narration %q: %v", key, err))
		}
		out[Outcome(key)] = tmpl
	}
	return out
}

// narrate renders the lines for key. Unknown keys and render failures
// produce no lines.
func narrate(key Outcome, d narrationData) []string {
	tmpl, ok := narration[key]
	if !ok {
		return nil
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil
	}
	text := strings.TrimRight(buf.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
