package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.Nil(t, Translate(nil))
	assert.ErrorIs(t, Translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, Translate(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)), ErrDuplicate)
	assert.ErrorIs(t, Translate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, Translate(other))
	assert.False(t, IsDuplicate(&mysql.MySQLError{Number: 1452}))
}
