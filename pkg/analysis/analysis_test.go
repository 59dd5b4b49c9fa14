package analysis

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleImage = "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQAAAQABAAD"

func TestRandomAnalyzer_ValuesWithinRanges(t *testing.T) {
	analyzer := NewSeededAnalyzer(1, 2)

	for i := 0; i < 200; i++ {
		result, err := analyzer.Analyze(context.Background(), sampleImage)
		require.NoError(t, err)

		assert.Contains(t, FaceShapes, result.FaceShape)
		assert.Contains(t, TeethColors, result.TeethAnalysis.Color)
		assert.Contains(t, TeethAlignments, result.TeethAnalysis.Alignment)
		assert.Contains(t, TeethSizes, result.TeethAnalysis.Size)

		require.Len(t, result.RecommendedStyles, 3)
		natural, hollywood, minimal := result.RecommendedStyles[0], result.RecommendedStyles[1], result.RecommendedStyles[2]

		assert.Equal(t, "natural", natural.ID)
		assert.GreaterOrEqual(t, natural.Compatibility, 80)
		assert.LessOrEqual(t, natural.Compatibility, 99)

		assert.Equal(t, "hollywood", hollywood.ID)
		assert.GreaterOrEqual(t, hollywood.Compatibility, 65)
		assert.LessOrEqual(t, hollywood.Compatibility, 94)

		assert.Equal(t, "minimal", minimal.ID)
		assert.GreaterOrEqual(t, minimal.Compatibility, 70)
		assert.LessOrEqual(t, minimal.Compatibility, 94)
	}
}

func TestRandomAnalyzer_RejectsInvalidImage(t *testing.T) {
	analyzer := NewRandomAnalyzer()

	for _, image := range []string{"", "hello", "data:text/plain;base64,aGk=", "data:image/png;base64,", "data:image/png,rawdata"} {
		_, err := analyzer.Analyze(context.Background(), image)
		assert.ErrorIs(t, err, ErrInvalidImage, image)
	}
}

func TestRandomAnalyzer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRandomAnalyzer().Analyze(ctx, sampleImage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRandomAnalyzer_Concurrent(t *testing.T) {
	analyzer := NewRandomAnalyzer()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := analyzer.Analyze(context.Background(), sampleImage)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
