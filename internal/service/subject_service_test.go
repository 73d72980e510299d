package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
)

func TestSubjectServiceList(t *testing.T) {
	svc := NewSubjectService()
	list := svc.List()
	assert.Len(t, list, 10)
	assert.Contains(t, list, models.SubjectPhysics)

	list[0] = "changed"
	assert.Equal(t, models.SubjectArts, svc.List()[0])
}
