package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-admin/backend/internal/store"
)

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	c := New().Collection(store.Courses)

	require.NoError(t, c.Put(ctx, "102", []byte(`{"courseCode":"102"}`)))
	require.NoError(t, c.Put(ctx, "101", []byte(`{"courseCode":"101"}`)))

	docs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "101", docs[0].Key)

	require.NoError(t, c.Put(ctx, "101", []byte(`{"courseCode":"101","courseName":"Intro"}`)))
	doc, err := c.Get(ctx, "101")
	require.NoError(t, err)
	assert.JSONEq(t, `{"courseCode":"101","courseName":"Intro"}`, string(doc.Data))

	require.NoError(t, c.Delete(ctx, "101"))
	_, err = c.Get(ctx, "101")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, c.Delete(ctx, "101"), "删除不存在的键不应报错")
}

func TestCollection_AddGeneratesKey(t *testing.T) {
	ctx := context.Background()
	c := New().Collection(store.Grades)

	k1, err := c.Add(ctx, []byte(`{"taskGrade":90}`))
	require.NoError(t, err)
	k2, err := c.Add(ctx, []byte(`{"taskGrade":80}`))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	docs, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCollection_ReturnedDataIsCopy(t *testing.T) {
	ctx := context.Background()
	c := New().Collection(store.Students)
	require.NoError(t, c.Put(ctx, "k", []byte(`{"a":1}`)))

	doc, err := c.Get(ctx, "k")
	require.NoError(t, err)
	doc.Data[0] = 'X'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), again.Data[0])
}
