package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
		want  Category
	}{
		{name: "math", reply: "1", want: CategoryMath},
		{name: "concept", reply: "2", want: CategoryConcept},
		{name: "fenced math", reply: "```\n1\n```", want: CategoryMath},
		{name: "chatty concept", reply: "Answer:  2\n", want: CategoryConcept},
		{name: "any 1 wins", reply: "2 or maybe 1", want: CategoryMath},
		{name: "empty-ish reply", reply: "  ", want: CategoryConcept},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			eng := &stubEngine{replies: []stubReply{{text: tc.reply}}}
			img := &Image{Data: []byte{1, 2, 3}, MIME: "image/png"}

			got := NewClassifier(eng, zap.NewNop()).Classify(context.Background(), img)
			assert.Equal(t, tc.want, got)

			require.Len(t, eng.prompts, 1)
			assert.Equal(t, classifyPrompt, eng.prompts[0])
			assert.Equal(t, "image/png", eng.blobs[0].MIMEType)
			assert.Equal(t, []byte{1, 2, 3}, eng.blobs[0].Data)
		})
	}
}

func TestClassifyFailsOpenToMath(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	eng := &stubEngine{replies: []stubReply{{err: errors.New("quota exceeded")}}}

	got := NewClassifier(eng, zap.New(core)).Classify(context.Background(), &Image{MIME: "image/png"})
	assert.Equal(t, CategoryMath, got)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "math", CategoryMath.String())
	assert.Equal(t, "concept", CategoryConcept.String())
	assert.Equal(t, "unknown", Category(9).String())
}
