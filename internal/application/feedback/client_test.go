package feedback

import (
	"context"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
	"github.com/secondhand/console/internal/testutil/fakedoer"
)

func TestList(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodGet, "/admin/feedback/list", map[string]any{
		"list": []map[string]any{{
			"feedbackId": 1, "feedbackType": 2, "status": 0, "priorityLevel": 2,
			"feedbackTitle": gofakeit.Sentence(4),
		}},
		"total": 1, "pageNum": 1, "pageSize": 10,
	})
	c := NewClient(doer)

	status := int(StatusUnprocessed)
	page, err := c.List(context.Background(), ListQuery{Status: &status, PageQuery: shared.Page(1, 10)})
	require.NoError(t, err)

	req := doer.Last()
	assert.Equal(t, "/admin/feedback/list", req.Path)
	assert.Equal(t, httpclient.Params{"status": "0", "pageNum": "1", "pageSize": "10"}, req.Params)

	require.Len(t, page.List, 1)
	item := page.List[0]
	assert.Equal(t, TypeExperienceIssue, item.FeedbackType)
	assert.Equal(t, PriorityUrgent, item.PriorityLevel)
	assert.Equal(t, "danger", item.PriorityLevel.Tone())
}

func TestSetPriorityHasNoBody(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodPut, "/admin/feedback/priority", true)
	c := NewClient(doer)

	ok, err := c.SetPriority(context.Background(), 5, PriorityImportant)
	require.NoError(t, err)
	assert.True(t, ok)

	req := doer.Last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, httpclient.Params{"feedbackId": "5", "priorityLevel": "1"}, req.Params)
	assert.Nil(t, req.Body)
}

func TestReply(t *testing.T) {
	doer := fakedoer.New()
	c := NewClient(doer)

	body := ReplyRequest{FeedbackID: 5, AdminReply: "fixed in the next release", Status: StatusProcessed}
	_, err := c.Reply(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, doer.Last().Method)
	assert.Equal(t, "/admin/feedback/reply", doer.Last().Path)
	assert.Equal(t, body, doer.Last().Body)
}

func TestDetailAndCount(t *testing.T) {
	doer := fakedoer.New()
	doer.Respond(http.MethodGet, "/admin/feedback/count", map[string]any{
		"totalCount": 9, "unprocessedCount": 4,
		"typeCounts":     map[string]any{"type1Count": 2},
		"priorityCounts": map[string]any{"urgentCount": 1},
	})
	c := NewClient(doer)

	count, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), count.TotalCount)
	assert.Equal(t, int64(2), count.TypeCounts.Type1Count)
	assert.Equal(t, int64(1), count.PriorityCounts.UrgentCount)

	_, err = c.Detail(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "/feedback/detail/8", doer.Last().Path)
	assert.Equal(t, http.MethodGet, doer.Last().Method)
}

func TestEnumLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"type suggestion", TypeFeatureSuggestion.Desc(), "功能建议"},
		{"type other", TypeOther.Desc(), "其他"},
		{"type unknown", Type(9).Desc(), "未知"},
		{"status processing", StatusProcessing.Desc(), "处理中"},
		{"status tone unprocessed", StatusUnprocessed.Tone(), "warning"},
		{"status tone processing", StatusProcessing.Tone(), "primary"},
		{"status tone processed", StatusProcessed.Tone(), "success"},
		{"status tone unknown", Status(7).Tone(), "info"},
		{"priority normal", PriorityNormal.Desc(), "普通"},
		{"priority tone normal", PriorityNormal.Tone(), "info"},
		{"priority tone important", PriorityImportant.Tone(), "warning"},
		{"priority unknown", Priority(-1).Desc(), "未知"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
