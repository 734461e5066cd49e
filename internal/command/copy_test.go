package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyItemsCmd_NothingToCopy(t *testing.T) {
	msg := CopyItemsCmd(nil)()
	assert.Equal(t, ItemsCopiedMsg{}, msg)
}
