package codefmt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/variantkit/variantgen/internal/codefmt"
)

type poser struct{ pos codefmt.Pos }

func (p poser) Pos() codefmt.Pos { return p.pos }

func TestErrorfNil(t *testing.T) {
	err := codefmt.Errorf(nil, "simple error")
	assert.Equal(t, "simple error", err.Error())
}

func TestErrorfPos(t *testing.T) {
	err := codefmt.Errorf(poser{codefmt.Pos{File: "test.schema", Line: 3, Col: 7}}, "error")
	assert.Equal(t, "test.schema:3:7: error", err.Error())
}

func TestErrorfInvalidPos(t *testing.T) {
	err := codefmt.Errorf(poser{}, "error")
	assert.Equal(t, "error", err.Error())
}

func TestErrorfWrap(t *testing.T) {
	kind := errors.New("some kind")
	err := codefmt.Errorf(poser{codefmt.Pos{File: "a", Line: 1}}, "%w: detail", kind)
	assert.True(t, errors.Is(err, kind))
	assert.Equal(t, "a:1: some kind: detail", err.Error())
}
