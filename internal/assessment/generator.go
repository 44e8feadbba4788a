package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/vocab"
)

const (
	recognitionPrompt = "What does this symbol mean?"
	sentencePrompt    = "Which sentence uses this symbol correctly?"
)

var (
	// recognitionDistractors are offered next to the symbol's name.
	recognitionDistractors = []string{"Help", "More", "Done"}
	// fallbackDistractors replace a distractor that collides with the answer.
	fallbackDistractors = []string{"Stop", "Yes", "No", "Go"}
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for StartedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc overrides the assessment id source.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// Generator builds assessments from fixed question templates.
type Generator struct {
	symbols vocab.SymbolLookup
	cfg     GeneratorConfig
	now     func() time.Time
	newID   func() string
}

// NewGenerator creates a generator that resolves symbol names through lookup.
func NewGenerator(lookup vocab.SymbolLookup, cfg GeneratorConfig, opts ...Option) *Generator {
	g := &Generator{
		symbols: lookup,
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds an assessment over the set. The first
// cfg.RecognitionQuestions symbols become symbol_recognition questions and
// the next cfg.SentenceQuestions become sentence_building questions. Sets
// with fewer symbols produce fewer questions. Symbols the lookup does not
// know are skipped; any other lookup error is returned.
func (g *Generator) Generate(ctx context.Context, userID string, set vocab.Set, typ Type) (*Assessment, error) {
	if userID == "" {
		return nil, errs.Invalid("user id", "must not be empty")
	}
	if _, err := ParseType(string(typ)); err != nil {
		return nil, err
	}

	recognition, sentence := splitSymbols(set.Symbols, g.cfg.RecognitionQuestions, g.cfg.SentenceQuestions)

	var questions []Question
	add := func(q Question) {
		q.ID = fmt.Sprintf("q_%d", len(questions))
		questions = append(questions, q)
	}

	for _, id := range recognition {
		sym, ok, err := g.resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			add(recognitionQuestion(sym))
		}
	}
	for _, id := range sentence {
		sym, ok, err := g.resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			add(sentenceQuestion(sym))
		}
	}

	return &Assessment{
		ID:              g.newID(),
		UserID:          userID,
		VocabularySetID: set.ID,
		Type:            typ,
		Questions:       questions,
		Results:         Results{},
		StartedAt:       g.now(),
	}, nil
}

// resolve looks a symbol up. ok is false when the symbol is unknown.
func (g *Generator) resolve(ctx context.Context, symbolID string) (vocab.Symbol, bool, error) {
	sym, err := g.symbols.Resolve(ctx, symbolID)
	if err != nil {
		if errs.IsNotFound(err) {
			return vocab.Symbol{}, false, nil
		}
		return vocab.Symbol{}, false, fmt.Errorf("resolve symbol %q: %w", symbolID, err)
	}
	return sym, true, nil
}

func splitSymbols(symbols []string, first, second int) (head, tail []string) {
	first, second = max(first, 0), max(second, 0)
	if first > len(symbols) {
		first = len(symbols)
	}
	head = symbols[:first]
	rest := symbols[first:]
	if second > len(rest) {
		second = len(rest)
	}
	return head, rest[:second]
}

func recognitionQuestion(sym vocab.Symbol) Question {
	first, _ := utf8.DecodeRuneInString(sym.Name)
	return Question{
		Type:          QuestionSymbolRecognition,
		SymbolID:      sym.ID,
		Text:          recognitionPrompt,
		Options:       recognitionOptions(sym.Name),
		CorrectAnswer: sym.Name,
		Hints: []string{
			fmt.Sprintf("It starts with %q", string(first)),
			fmt.Sprintf("It has %d letters", utf8.RuneCountInString(sym.Name)),
		},
	}
}

// recognitionOptions returns the answer followed by three distractors that
// differ from it.
func recognitionOptions(answer string) []string {
	options := []string{answer}
	fallback := 0
	for _, d := range recognitionDistractors {
		for strings.EqualFold(d, answer) && fallback < len(fallbackDistractors) {
			d = fallbackDistractors[fallback]
			fallback++
		}
		options = append(options, d)
	}
	return options
}

func sentenceQuestion(sym vocab.Symbol) Question {
	word := strings.ToLower(sym.Name)
	correct := "I want " + word
	return Question{
		Type:     QuestionSentenceBuilding,
		SymbolID: sym.ID,
		Text:     sentencePrompt,
		Options: []string{
			correct,
			"I need " + word,
			"I like " + word,
			"Help with " + word,
		},
		CorrectAnswer: correct,
		Hints: []string{
			fmt.Sprintf("Think about asking for %s", word),
		},
	}
}
