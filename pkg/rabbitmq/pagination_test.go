package rabbitmq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaelklishin/rabbitmq-http-api-go/pkg/rabbitmq"
)

func TestPaginationParams_ToQuery(t *testing.T) {
	params := rabbitmq.NewPaginationParams(3, 50)

	query := params.ToQuery()
	assert.Equal(t, "3", query.Get("page"))
	assert.Equal(t, "50", query.Get("page_size"))
}

func TestPaginationParams_ZeroValue(t *testing.T) {
	var params rabbitmq.PaginationParams

	// The zero value requests the first page of the default size.
	assert.Equal(t, 1, params.EffectivePage())
	assert.Equal(t, rabbitmq.DefaultPageSize, params.EffectivePageSize())
}

func TestPaginationParams_PageSizeCappedAtMax(t *testing.T) {
	params := rabbitmq.NewPaginationParams(1, 10_000)

	assert.Equal(t, rabbitmq.MaxPageSize, params.EffectivePageSize())
}

func TestPaginationParams_NextPage(t *testing.T) {
	params := rabbitmq.NewPaginationParams(2, 50)

	next := params.NextPage()
	assert.Equal(t, 3, next.Page)
	assert.Equal(t, 50, next.PageSize)
}

func TestPaginatedResponse_IsLastPage(t *testing.T) {
	tests := []struct {
		name     string
		response rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]
		expected bool
	}{
		{
			name: "middle page",
			response: rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]{
				ItemCount: 100,
				Page:      2,
				PageCount: 5,
				PageSize:  100,
			},
			expected: false,
		},
		{
			name: "final page by page count",
			response: rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]{
				ItemCount: 100,
				Page:      5,
				PageCount: 5,
				PageSize:  100,
			},
			expected: true,
		},
		{
			name: "short page",
			response: rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]{
				ItemCount: 17,
				Page:      1,
				PageCount: 2,
				PageSize:  100,
			},
			expected: true,
		},
		{
			name: "empty page",
			response: rabbitmq.PaginatedResponse[rabbitmq.QueueInfo]{
				ItemCount: 0,
				Page:      1,
				PageCount: 0,
				PageSize:  100,
			},
			expected: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.response.IsLastPage())
		})
	}
}
