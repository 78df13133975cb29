package response

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatVoice    Format = "voice"
	FormatText     Format = "text"
)

// ParseFormat validates a format name. The empty string means Markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatHTML, FormatVoice, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, html, voice or text)", s)
	}
}

// DefaultVoiceMaxChars bounds the text handed to a speech synthesizer.
const DefaultVoiceMaxChars = 500

// Renderer formats a Response for one output medium.
type Renderer interface {
	Render(r Response) string
}

// NewRenderer returns the renderer for f. voiceMaxChars only applies to the
// voice format; values <= 0 use DefaultVoiceMaxChars.
func NewRenderer(f Format, voiceMaxChars int) Renderer {
	switch f {
	case FormatHTML:
		return HTMLRenderer{}
	case FormatVoice:
		return VoiceRenderer{MaxChars: voiceMaxChars}
	case FormatText:
		return TextRenderer{}
	default:
		return MarkdownRenderer{}
	}
}

// TextRenderer produces plain text with bullet lists.
type TextRenderer struct{}

func (TextRenderer) Render(r Response) string {
	var b strings.Builder
	line := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteString("\n\n")
		}
	}

	line(r.Title)
	line(r.Intro)
	for _, blk := range r.Blocks {
		if blk.Heading != "" {
			b.WriteString(blk.Heading)
			b.WriteString(":\n")
		}
		if blk.Text != "" {
			b.WriteString(blk.Text)
			b.WriteString("\n")
		}
		for i, item := range blk.Items {
			b.WriteString(bullet(blk.Ordered, i, "•"))
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	line(r.Closing)
	return strings.TrimSpace(b.String())
}

// MarkdownRenderer produces chat text with bold headings.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(r Response) string {
	var b strings.Builder
	if r.Title != "" {
		fmt.Fprintf(&b, "**%s**\n\n", r.Title)
	}
	if r.Intro != "" {
		b.WriteString(r.Intro)
		b.WriteString("\n\n")
	}
	for _, blk := range r.Blocks {
		if blk.Heading != "" {
			fmt.Fprintf(&b, "**%s:**\n", blk.Heading)
		}
		if blk.Text != "" {
			b.WriteString(blk.Text)
			b.WriteString("\n")
		}
		for i, item := range blk.Items {
			b.WriteString(bullet(blk.Ordered, i, "-"))
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if r.Closing != "" {
		b.WriteString(r.Closing)
	}
	return strings.TrimSpace(b.String())
}

func bullet(ordered bool, i int, mark string) string {
	if ordered {
		return strconv.Itoa(i+1) + ". "
	}
	return mark + " "
}

var htmlTemplate = template.Must(template.New("response").Parse(`<div class="bot-response">
{{- with .Title}}<strong>{{.}}</strong>{{end}}
{{- with .Intro}}<p>{{.}}</p>{{end}}
{{- range .Blocks}}
{{- with .Heading}}<p><strong>{{.}}:</strong></p>{{end}}
{{- with .Text}}<p>{{.}}</p>{{end}}
{{- if .Items}}{{if .Ordered}}<ol>{{else}}<ul>{{end}}
{{- range .Items}}<li>{{.}}</li>{{end}}
{{- if .Ordered}}</ol>{{else}}</ul>{{end}}{{end}}
{{- end}}
{{- with .Closing}}<p>{{.}}</p>{{end}}</div>`))

// HTMLRenderer produces an escaped HTML fragment.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(r Response) string {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		// Only a writer failure can get here and bytes.Buffer never fails.
		return template.HTMLEscapeString(TextRenderer{}.Render(r))
	}
	return buf.String()
}

var (
	markupPattern = regexp.MustCompile(`<[^>]*>|\*\*|__|[#*_` + "`" + `]`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// VoiceRenderer produces text for speech synthesis: no markup, no emoji and
// no more than MaxChars runes.
type VoiceRenderer struct {
	MaxChars int
}

func (v VoiceRenderer) Render(r Response) string {
	limit := v.MaxChars
	if limit <= 0 {
		limit = DefaultVoiceMaxChars
	}

	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, strings.TrimRight(s, ".:")+".")
		}
	}
	add(r.Title)
	add(r.Intro)
	for _, blk := range r.Blocks {
		add(blk.Heading)
		add(blk.Text)
		for _, item := range blk.Items {
			add(item)
		}
	}
	add(r.Closing)

	return Speakable(strings.Join(parts, " "), limit)
}

// Speakable strips markup and emoji from text, collapses whitespace and
// truncates the result to at most maxChars runes, cutting at a word
// boundary when there is one. maxChars <= 0 uses DefaultVoiceMaxChars.
func Speakable(text string, maxChars int) string {
	text = markupPattern.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || r == '\uFE0F' || r == '\u200D' {
			return -1
		}
		return r
	}, text)
	text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

	if maxChars <= 0 {
		maxChars = DefaultVoiceMaxChars
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	const ellipsis = "..."
	cut := maxChars - len(ellipsis)
	if cut <= 0 {
		return string(runes[:maxChars])
	}
	head := string(runes[:cut])
	if i := strings.LastIndexByte(head, ' '); i > 0 {
		head = head[:i]
	}
	return strings.TrimRight(head, " ,;:") + ellipsis
}
