package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQueryAllSinglePage(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "questions-db", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(&notionapi.DatabaseQueryResponse{
			Results: []notionapi.Page{{ID: "q-age"}, {ID: "q-income"}},
			HasMore: false,
		}, nil).Once()

	pages, err := QueryAll(ctx, mc, "questions-db", nil)
	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	mc.AssertExpectations(t)
}

func TestQueryAllFollowsCursor(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "questions-db", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{{ID: "q-age"}},
		HasMore:    true,
		NextCursor: notionapi.Cursor("cur-1"),
	}, nil).Once()

	mc.On("QueryDatabase", ctx, "questions-db", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == notionapi.Cursor("cur-1")
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "q-income"}},
		HasMore: false,
	}, nil).Once()

	pages, err := QueryAll(ctx, mc, "questions-db", nil)
	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, notionapi.ObjectID("q-age"), pages[0].ID)
	assert.Equal(t, notionapi.ObjectID("q-income"), pages[1].ID)
	mc.AssertExpectations(t)
}

func TestQueryAllCarriesFilterAcrossPages(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	activeOnly := func(req *notionapi.DatabaseQueryRequest) bool {
		pf, ok := req.Filter.(notionapi.PropertyFilter)
		return ok && pf.Property == "Status" && pf.Status != nil && pf.Status.Equals == "Active"
	}

	mc.On("QueryDatabase", ctx, "questions-db", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == "" && activeOnly(req)
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{{ID: "q-age"}},
		HasMore:    true,
		NextCursor: notionapi.Cursor("cur-1"),
	}, nil).Once()

	// The second request must keep the same filter.
	mc.On("QueryDatabase", ctx, "questions-db", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == notionapi.Cursor("cur-1") && activeOnly(req)
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{{ID: "q-goal"}},
		HasMore: false,
	}, nil).Once()

	filter := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Status",
			Status:   &notionapi.StatusFilterCondition{Equals: "Active"},
		},
	}

	pages, err := QueryAll(ctx, mc, "questions-db", filter)
	assert.NoError(t, err)
	assert.Len(t, pages, 2)
	mc.AssertExpectations(t)
}

func TestQueryAllPropagatesError(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "questions-db", mock.AnythingOfType("*notionapi.DatabaseQueryRequest")).
		Return(nil, assert.AnError).Once()

	pages, err := QueryAll(ctx, mc, "questions-db", nil)
	assert.Error(t, err)
	assert.Nil(t, pages)
	mc.AssertExpectations(t)
}

func TestQueryAllStopsWhenCancelled(t *testing.T) {
	mc := new(MockClient)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := QueryAll(ctx, mc, "questions-db", nil)
	assert.Error(t, err)
	assert.Nil(t, pages)
}
