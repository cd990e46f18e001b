package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBarangValid(t *testing.T) {
	for _, s := range []StatusBarang{StatusTersedia, StatusHabis, StatusDipinjam, StatusRusak, StatusHilang} {
		assert.True(t, s.Valid(), "status %q harus valid", s)
	}

	assert.False(t, StatusBarang("").Valid())
	assert.False(t, StatusBarang("tersedia").Valid(), "case-sensitive")
	assert.False(t, StatusBarang("Dipakai").Valid())
}
