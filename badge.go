package emoscope

// Badge is the decoration shown next to a dominant emotion.
type Badge struct {
	Emoji string `json:"emoji"`
	GIF   string `json:"gif"`
}

// FallbackEmotion is used for emotions that have no badge of their own.
const FallbackEmotion = "NEUTRAL"

var badges = map[string]Badge{
	"ANGER":     {Emoji: "😠", GIF: "https://media0.giphy.com/media/jsNiI5nMGQurggwpkN/giphy.webp"},
	"HAPPINESS": {Emoji: "😄", GIF: "https://media4.giphy.com/media/USR9bpLz899PYVHk7C/giphy.webp"},
	"SADNESS":   {Emoji: "😢", GIF: "https://media0.giphy.com/media/StAnQV9TUCuys/giphy.webp"},
	"JOY":       {Emoji: "😊", GIF: "https://media0.giphy.com/media/LN5bH1r7UEpSRbcN7M/giphy.webp"},
	"FEAR":      {Emoji: "😨", GIF: "https://media0.giphy.com/media/Gl7mfimOjkkGl5mMDS/giphy.webp"},
	"NEUTRAL":   {Emoji: "😐", GIF: "https://media3.giphy.com/media/7CXIO53h5YciXOp505/giphy.webp"},
	"DISGUST":   {Emoji: "🤢", GIF: "https://media0.giphy.com/media/jsNiI5nMGQurggwpkN/giphy.webp"},
	"SURPRISE":  {Emoji: "😲", GIF: "https://media0.giphy.com/media/Gl7mfimOjkkGl5mMDS/giphy.webp"},
}

// BadgeFor returns the badge for an upper-cased emotion, falling back to
// the NEUTRAL badge for unknown emotions.
func BadgeFor(emotion string) Badge {
	if b, ok := badges[emotion]; ok {
		return b
	}
	return badges[FallbackEmotion]
}

// Badges returns a copy of the full badge table.
func Badges() map[string]Badge {
	out := make(map[string]Badge, len(badges))
	for k, v := range badges {
		out[k] = v
	}
	return out
}
