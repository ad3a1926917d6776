package emoscope_test

import (
	"testing"

	"github.com/fwojciec/emoscope"
	"github.com/stretchr/testify/assert"
)

func TestStyles_EmotionColor(t *testing.T) {
	t.Parallel()

	s := emoscope.Styles{
		Emotions: map[string]emoscope.ColorPair{
			"JOY": {Foreground: "#ffd700"},
		},
		Accent: emoscope.ColorPair{Foreground: "#888888"},
	}

	assert.Equal(t, "#ffd700", s.EmotionColor("JOY").Foreground)
	assert.Equal(t, "#888888", s.EmotionColor("CONTEMPT").Foreground)
}

func TestStyles_EmotionColor_NilMap(t *testing.T) {
	t.Parallel()

	s := emoscope.Styles{Accent: emoscope.ColorPair{Foreground: "#123456"}}

	assert.Equal(t, "#123456", s.EmotionColor("JOY").Foreground)
}
