package model

import (
	"encoding/json"
	"testing"

	"billing/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestOptional_DistinguishesOmittedAndNull(t *testing.T) {
	var p CustomerPatch
	require.NoError(t, json.Unmarshal([]byte(`{"age": 41, "description": null}`), &p))

	assert.False(t, p.Name.Set)
	assert.False(t, p.Email.Set)
	assert.True(t, p.Age.Set)
	assert.Equal(t, 41, p.Age.Value)
	assert.True(t, p.Description.Set)
	assert.True(t, p.Description.Null)

	updates := p.Updates()
	assert.Equal(t, map[string]interface{}{"age": 41, "description": nil}, updates)
}

func TestCustomerPatch_RejectsNullRequiredField(t *testing.T) {
	var p CustomerPatch
	require.NoError(t, json.Unmarshal([]byte(`{"email": null}`), &p))

	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "email cannot be null", apperr.MessageOf(err))
}

func TestCustomerPatch_RejectsBadEmail(t *testing.T) {
	p := CustomerPatch{Email: Some("not-an-email")}

	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, "email is not a valid email address", apperr.MessageOf(err))
}

func TestCustomerCreate_Validate(t *testing.T) {
	in := CustomerCreate{Name: "Ada", Email: "ada@example.com", Age: intPtr(36)}
	require.NoError(t, in.Validate())

	missingAge := CustomerCreate{Name: "Ada", Email: "ada@example.com"}
	err := missingAge.Validate()
	require.Error(t, err)
	assert.Equal(t, "age is required", apperr.MessageOf(err))

	badEmail := CustomerCreate{Name: "Ada", Email: "ada.example.com", Age: intPtr(36)}
	err = badEmail.Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCustomerCreate_SanitizesMarkup(t *testing.T) {
	desc := "<b>vip</b> customer"
	in := CustomerCreate{Name: "<script>alert(1)</script>Ada", Description: &desc, Email: "ada@example.com", Age: intPtr(0)}
	require.NoError(t, in.Validate())

	assert.Equal(t, "Ada", in.Name)
	assert.Equal(t, "vip customer", *in.Description)

	escapedDesc := "&lt;b&gt;vip&lt;/b&gt;"
	escaped := CustomerCreate{Name: "&lt;script&gt;x&lt;/script&gt;Ada", Description: &escapedDesc, Email: "ada@example.com", Age: intPtr(0)}
	require.NoError(t, escaped.Validate())

	assert.Equal(t, "Ada", escaped.Name)
	assert.Equal(t, "vip", *escaped.Description)
}

func TestSanitizeText_KeepsPunctuation(t *testing.T) {
	assert.Equal(t, "O'Brien & Sons", SanitizeText("  O'Brien & Sons "))
	assert.Equal(t, "plain", SanitizeText("<i>plain</i>"))
}

func TestTransactionCreate_AllowsNegativeAmount(t *testing.T) {
	in := TransactionCreate{CustomerID: int64Ptr(1), Amount: int64Ptr(-250)}
	require.NoError(t, in.Validate())
	assert.Equal(t, int64(-250), in.ToTransaction().Amount)

	missing := TransactionCreate{Amount: int64Ptr(10)}
	assert.Error(t, missing.Validate())
}

func TestParsePlanStatus(t *testing.T) {
	s, err := ParsePlanStatus("")
	require.NoError(t, err)
	assert.Equal(t, PlanStatusActive, s)

	s, err = ParsePlanStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, PlanStatusInactive, s)

	_, err = ParsePlanStatus("paused")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = ParsePlanStatus("Active")
	assert.Error(t, err)
}

func TestCustomerPlanPatch_Validate(t *testing.T) {
	p := CustomerPlanPatch{Status: Some("inactive")}
	s, err := p.Validate()
	require.NoError(t, err)
	assert.Equal(t, PlanStatusInactive, s)

	empty := CustomerPlanPatch{Status: Some("")}
	_, err = empty.Validate()
	assert.Error(t, err)

	null := CustomerPlanPatch{Status: Null[string]()}
	_, err = null.Validate()
	assert.Error(t, err)
}

func TestInvoice_AmountTotal(t *testing.T) {
	inv := BuildInvoice(1, Customer{ID: 7}, []Transaction{{Amount: 100}, {Amount: 250}}, 999)

	assert.Equal(t, int64(350), inv.AmountTotal())
	assert.Equal(t, int64(999), inv.Total)

	empty := BuildInvoice(2, Customer{ID: 7}, nil, 0)
	assert.Equal(t, int64(0), empty.AmountTotal())
	assert.NotNil(t, empty.Transactions)
}

func TestInvoice_MarshalKeepsBothTotals(t *testing.T) {
	inv := BuildInvoice(3, Customer{ID: 7, Name: "Ada"}, []Transaction{{ID: 1, Amount: 100, CustomerID: 7}}, 40)

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.EqualValues(t, 40, body["total"])
	assert.EqualValues(t, 100, body["amount_total"])
	assert.EqualValues(t, 3, body["id"])
	assert.Len(t, body["transactions"], 1)
}

func TestBuildInvoice_CopiesTransactions(t *testing.T) {
	txs := []Transaction{{Amount: 5}}
	inv := BuildInvoice(1, Customer{}, txs, 0)
	txs[0].Amount = 500

	assert.Equal(t, int64(5), inv.AmountTotal())
}
