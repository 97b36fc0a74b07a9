package repository_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/repository"
)

// mockMigrator records AutoMigrate calls and can fail on a chosen model.
type mockMigrator struct {
	calledWith []any
	errOn      any
}

func (m *mockMigrator) AutoMigrate(dst ...any) error {
	m.calledWith = append(m.calledWith, dst[0])
	if m.errOn != nil && reflect.TypeOf(dst[0]) == reflect.TypeOf(m.errOn) {
		return fmt.Errorf("fail on %T", dst[0])
	}
	return nil
}

func TestMigrate_Success(t *testing.T) {
	mm := &mockMigrator{}
	err := repository.Migrate(mm)
	assert.NoError(t, err)

	assert.Equal(t, len(model.AllModels), len(mm.calledWith), "should call AutoMigrate for each model")
	for i, inst := range model.AllModels {
		assert.Equal(t, reflect.TypeOf(inst), reflect.TypeOf(mm.calledWith[i]))
	}
}

func TestMigrate_Error(t *testing.T) {
	mm := &mockMigrator{errOn: &model.Scan{}}
	err := repository.Migrate(mm)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fail on *model.Scan")
	assert.Greater(t, len(mm.calledWith), 0)
}
