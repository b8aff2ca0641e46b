package recognizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
)

func TestParseClassifierResponse_WellFormed(t *testing.T) {
	content := `("intent"<||>SearchPics<||>0.92)##
("entity"<||>facet<||>mountains<||>0.88)##
<|COMPLETE|>`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, model.IntentSearchPics, result.Name)
	require.InDelta(t, 0.92, result.Confidence, 1e-9)
	require.Equal(t, "mountains", result.Facet())
}

func TestParseClassifierResponse_PicksHighestConfidenceIntent(t *testing.T) {
	content := `("intent"<||>Help<||>0.40)##("intent"<||>Order<||>0.85)##("intent"<||>Share<||>0.60)##<|COMPLETE|>`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, model.IntentOrder, result.Name)
	require.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestParseClassifierResponse_BestValuePerEntitySlot(t *testing.T) {
	content := `("intent"<||>SearchPics<||>0.9)##
("entity"<||>facet<||>dogs<||>0.5)##
("entity"<||>facet<||>cats<||>0.8)##
("entity"<||>facet<||>birds<||>0.3)##
<|COMPLETE|>`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, "cats", result.Facet())
}

func TestParseClassifierResponse_SkipsMalformedRecords(t *testing.T) {
	content := `garbage##
("intent"<||>0.9)##
("intent"<||>Help<||>not-a-number)##
("intent"<||>Help<||>1.7)##
("entity"<||>facet<||>0.9)##
("intent"<||>SearchPics<||>0.7)##
<|COMPLETE|>`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, model.IntentSearchPics, result.Name)
	require.InDelta(t, 0.7, result.Confidence, 1e-9)
	require.Empty(t, result.Facet())
}

func TestParseClassifierResponse_NoIntentIsAnError(t *testing.T) {
	_, err := ParseClassifierResponse(`("entity"<||>facet<||>mountains<||>0.9)##<|COMPLETE|>`)
	require.Error(t, err)

	_, err = ParseClassifierResponse("")
	require.Error(t, err)

	_, err = ParseClassifierResponse("total nonsense with no records at all")
	require.Error(t, err)
}

func TestParseClassifierResponse_IgnoresContentAfterEndMarker(t *testing.T) {
	content := `("intent"<||>Help<||>0.9)##<|COMPLETE|>("intent"<||>Order<||>0.99)##`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, model.IntentHelp, result.Name)
}

func TestParseClassifierResponse_UnknownRecordTypesIgnored(t *testing.T) {
	content := `("sentiment"<||>positive<||>0.99)##("intent"<||>Greeting<||>0.8)##<|COMPLETE|>`

	result, err := ParseClassifierResponse(content)
	require.NoError(t, err)
	require.Equal(t, model.IntentGreeting, result.Name)
}

func TestParseConfidence_Bounds(t *testing.T) {
	for _, s := range []string{"0", "0.5", "1", " 0.65 "} {
		_, err := parseConfidence(s)
		require.NoError(t, err, "expected %q to parse", s)
	}
	for _, s := range []string{"-0.1", "1.01", "NaN", "+Inf", "abc", ""} {
		_, err := parseConfidence(s)
		require.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestParseClassifierResponse_RecordCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < maxRecords; i++ {
		sb.WriteString(`("entity"<||>facet<||>noise<||>0.1)##`)
	}
	// The winning intent sits past the cap and must not be reached.
	sb.WriteString(`("intent"<||>Order<||>0.99)##`)

	_, err := ParseClassifierResponse(sb.String())
	require.Error(t, err)
}
