package notificacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLidaPara(t *testing.T) {
	n := Notificacao{LidaPor: []string{"aaa", "bbb"}}

	assert.True(t, n.LidaPara("aaa"))
	assert.False(t, n.LidaPara("ccc"))

	vazia := Notificacao{}
	assert.False(t, vazia.LidaPara("aaa"))
}
