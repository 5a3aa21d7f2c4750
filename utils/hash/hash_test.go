package hash_test

import (
	"testing"

	"github.com/muhammadheryan/stock-coordinator/utils/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	tests := []struct {
		name      string
		a         interface{}
		b         interface{}
		wantEqual bool
	}{
		{
			name: "line item order does not change the digest",
			a: map[string]interface{}{
				"branch_id": 1,
				"items": []map[string]interface{}{
					{"product_id": 10, "variant_sku": "", "quantity": 2},
					{"product_id": 11, "variant_sku": "RED-M", "quantity": 1},
				},
			},
			b: map[string]interface{}{
				"branch_id": 1,
				"items": []map[string]interface{}{
					{"product_id": 11, "variant_sku": "RED-M", "quantity": 1},
					{"product_id": 10, "variant_sku": "", "quantity": 2},
				},
			},
			wantEqual: true,
		},
		{
			name:      "field order does not change the digest",
			a:         map[string]interface{}{"branch_id": 1, "order_id": 55},
			b:         map[string]interface{}{"order_id": 55, "branch_id": 1},
			wantEqual: true,
		},
		{
			name: "volatile fields are stripped",
			a: map[string]interface{}{
				"branch_id":    1,
				"timestamp":    "2026-08-30T10:00:00Z",
				"requested_at": "2026-08-30T10:00:00Z",
				"request_id":   "req-abc",
				"trace_id":     "trace-1",
			},
			b: map[string]interface{}{
				"branch_id":  1,
				"timestamp":  "2026-08-30T11:30:00Z",
				"request_id": "req-xyz",
			},
			wantEqual: true,
		},
		{
			name: "volatile fields are stripped at any depth",
			a: map[string]interface{}{
				"items": []map[string]interface{}{
					{"product_id": 10, "quantity": 2, "created_at": "2026-08-30T10:00:00Z"},
				},
			},
			b: map[string]interface{}{
				"items": []map[string]interface{}{
					{"product_id": 10, "quantity": 2},
				},
			},
			wantEqual: true,
		},
		{
			name:      "quantity change changes the digest",
			a:         map[string]interface{}{"items": []map[string]interface{}{{"product_id": 10, "quantity": 2}}},
			b:         map[string]interface{}{"items": []map[string]interface{}{{"product_id": 10, "quantity": 3}}},
			wantEqual: false,
		},
		{
			name:      "variant change changes the digest",
			a:         map[string]interface{}{"items": []map[string]interface{}{{"product_id": 10, "variant_sku": "RED-M"}}},
			b:         map[string]interface{}{"items": []map[string]interface{}{{"product_id": 10, "variant_sku": "RED-L"}}},
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha, err := hash.Payload(tt.a)
			require.NoError(t, err)
			hb, err := hash.Payload(tt.b)
			require.NoError(t, err)

			assert.NotEmpty(t, ha)
			assert.Len(t, ha, 64)
			if tt.wantEqual {
				assert.Equal(t, ha, hb)
			} else {
				assert.NotEqual(t, ha, hb)
			}
		})
	}
}

func TestPayload_StructAndMapAgree(t *testing.T) {
	type item struct {
		ProductID  uint64 `json:"product_id"`
		VariantSKU string `json:"variant_sku"`
		Quantity   int64  `json:"quantity"`
	}
	type payload struct {
		BranchID uint64 `json:"branch_id"`
		Items    []item `json:"items"`
	}

	fromStruct, err := hash.Payload(payload{
		BranchID: 1,
		Items:    []item{{ProductID: 10, VariantSKU: "RED-M", Quantity: 2}},
	})
	require.NoError(t, err)

	fromMap, err := hash.Payload(map[string]interface{}{
		"branch_id": 1,
		"items": []map[string]interface{}{
			{"product_id": 10, "variant_sku": "RED-M", "quantity": 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, fromStruct, fromMap)
}
