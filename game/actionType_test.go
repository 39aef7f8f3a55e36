package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionJSON(t *testing.T) {
	raw, err := json.Marshal(PayDividend("alice", "PRR", 100))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"pay_dividend","player":"alice","company":"PRR","amount":100}`, string(raw))

	raw, err = json.Marshal(Undo("bob"))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"undo","player":"bob"}`, string(raw))

	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"type":"SELL_SHARE","player":"carol","company":"NYC"}`), &a))
	require.Equal(t, SellShare("carol", "NYC"), a)

	require.Error(t, json.Unmarshal([]byte(`{"type":"build_track","player":"carol"}`), &a))
	_, err = json.Marshal(Action{Type: ActionType(99)})
	require.Error(t, err)
}

func TestActionString(t *testing.T) {
	require.Equal(t, "alice buy_share PRR", BuyShare("alice", "PRR").String())
	require.Equal(t, "bob withhold NYC 300", Withhold("bob", "NYC", 300).String())
	require.Equal(t, "carol redo", Redo("carol").String())
	require.Equal(t, "action(42)", ActionType(42).String())
	require.True(t, Undo("alice").IsHistory())
	require.False(t, Pass("alice").IsHistory())
}
