package random_test

import (
	"testing"

	"github.com/pixelforge/amigacore/random"
	"github.com/pixelforge/amigacore/test"
)

type tv struct {
}

func (m *tv) GetCoords() random.Coords {
	return random.Coords{
		Frame: 100,
		V:     32,
		H:     10,
	}
}

func TestRandom(t *testing.T) {
	a := random.NewRandom(&tv{})
	b := random.NewRandom(&tv{})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Rewindable(i), b.Rewindable(i))
	}
}
