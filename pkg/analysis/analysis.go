// Package analysis produces cosmetic-dentistry recommendations for a smile photo.
package analysis

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
)

const placeholderImage = "/placeholder.svg?height=300&width=400"

var (
	FaceShapes      = []string{"Oval", "Round", "Square", "Heart", "Diamond"}
	TeethColors     = []string{"A1", "A2", "A3", "B1", "B2"}
	TeethAlignments = []string{"Excellent", "Good", "Fair", "Needs Improvement"}
	TeethSizes      = []string{"Proportional", "Slightly Small", "Slightly Large"}
)

var ErrInvalidImage = errors.New("image must be a base64 data:image URI")

type TeethAnalysis struct {
	Color     string `json:"color"`
	Alignment string `json:"alignment"`
	Size      string `json:"size"`
}

type Style struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Compatibility int    `json:"compatibility"`
	ImageURL      string `json:"image_url"`
}

type Result struct {
	FaceShape         string        `json:"face_shape"`
	TeethAnalysis     TeethAnalysis `json:"teeth_analysis"`
	RecommendedStyles []Style       `json:"recommended_styles"`
}

// Analyzer turns an image into a Result. Implementations must be safe for concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, image string) (*Result, error)
}

// styleTemplate draws compatibility uniformly from [min, min+span)
type styleTemplate struct {
	id          string
	name        string
	description string
	min         int
	span        int
}

var styleTemplates = []styleTemplate{
	{
		id:          "natural",
		name:        "Natural Look",
		description: "These veneers are designed to look like natural teeth with slight imperfections and translucency that mimics real enamel.",
		min:         80,
		span:        20,
	},
	{
		id:          "hollywood",
		name:        "Hollywood Smile",
		description: "Bright white, perfectly aligned veneers that create a dramatic, camera-ready smile popular among celebrities.",
		min:         65,
		span:        30,
	},
	{
		id:          "minimal",
		name:        "Minimal Enhancement",
		description: "Subtle veneers that make minor improvements while maintaining most of your natural tooth characteristics.",
		min:         70,
		span:        25,
	},
}

// RandomAnalyzer returns randomized results. It never inspects the pixels.
type RandomAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAnalyzer() *RandomAnalyzer {
	return &RandomAnalyzer{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededAnalyzer returns a deterministic analyzer
func NewSeededAnalyzer(seed1, seed2 uint64) *RandomAnalyzer {
	return &RandomAnalyzer{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (a *RandomAnalyzer) Analyze(ctx context.Context, image string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsImageDataURI(image) {
		return nil, ErrInvalidImage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result := &Result{
		FaceShape: a.pick(FaceShapes),
		TeethAnalysis: TeethAnalysis{
			Color:     a.pick(TeethColors),
			Alignment: a.pick(TeethAlignments),
			Size:      a.pick(TeethSizes),
		},
		RecommendedStyles: make([]Style, 0, len(styleTemplates)),
	}

	for _, tpl := range styleTemplates {
		result.RecommendedStyles = append(result.RecommendedStyles, Style{
			ID:            tpl.id,
			Name:          tpl.name,
			Description:   tpl.description,
			Compatibility: tpl.min + a.rng.IntN(tpl.span),
			ImageURL:      placeholderImage,
		})
	}

	return result, nil
}

func (a *RandomAnalyzer) pick(items []string) string {
	return items[a.rng.IntN(len(items))]
}

// IsImageDataURI reports whether s looks like data:image/<type>;base64,<payload>
func IsImageDataURI(s string) bool {
	if !strings.HasPrefix(s, "data:image/") {
		return false
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok || payload == "" {
		return false
	}
	return strings.HasSuffix(header, ";base64")
}
