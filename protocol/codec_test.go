package protocol

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestsShareBufferedReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, &Request{Type: CmdSetVolume, Data: SetVolumeRequest{Volume: 37}}))
	require.NoError(t, WriteRequest(&buf, &Request{Type: CmdPing, ID: "x"}))

	r := bufio.NewReader(&buf)
	first, err := ReadRequest(r)
	require.NoError(t, err)
	second, err := ReadRequest(r)
	require.NoError(t, err)
	_, err = ReadRequest(r)
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, CmdSetVolume, first.Type)
	var payload SetVolumeRequest
	require.NoError(t, DecodeData(first.Data, &payload))
	assert.Equal(t, 37, payload.Volume)

	assert.Equal(t, CmdPing, second.Type)
	assert.Equal(t, "x", second.ID)
}

func TestResponseOutcome(t *testing.T) {
	level := 42
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, &Response{
		Status: StatusOK,
		Data:   Outcome{Success: true, Message: "Volume set to 42%", Volume: &level},
	}))
	assert.Equal(t, `{"status":"ok","data":{"success":true,"message":"Volume set to 42%","volume":42}}`+"\n", buf.String())

	resp, err := ReadResponse(&buf)
	require.NoError(t, err)
	var out Outcome
	require.NoError(t, DecodeData(resp.Data, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Volume)
	assert.Equal(t, 42, *out.Volume)
}

func TestReadRequest_Malformed(t *testing.T) {
	_, err := ReadRequest(strings.NewReader("{not json}\n"))
	assert.ErrorContains(t, err, "decode error")

	_, err = ReadRequest(strings.NewReader(`{"type":"sleep"}`))
	assert.ErrorContains(t, err, "read error")
}

func TestDecodeData(t *testing.T) {
	var amount AmountRequest
	require.NoError(t, DecodeData(nil, &amount))
	assert.Zero(t, amount.Amount)

	require.NoError(t, DecodeData(map[string]any{"amount": 5}, &amount))
	assert.Equal(t, 5, amount.Amount)

	assert.Error(t, DecodeData(map[string]any{"amount": "five"}, &amount))
}

func TestReadRequest_LineLimit(t *testing.T) {
	filler := strings.Repeat("a", MaxLineBytes)
	_, err := ReadRequest(strings.NewReader(`{"type":"` + filler + `"}` + "\n"))
	assert.ErrorIs(t, err, ErrLineTooLong)

	fits := `{"type":"sleep","id":"` + strings.Repeat("b", MaxLineBytes-64) + `"}` + "\n"
	req, err := ReadRequest(strings.NewReader(fits))
	require.NoError(t, err)
	assert.Equal(t, CmdSleep, req.Type)
}

func TestReadRequest_KeepsLargeNumbersExact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequest(&buf, &Request{Type: CmdIncreaseVolume, Data: AmountRequest{Amount: math.MaxInt}}))

	req, err := ReadRequest(&buf)
	require.NoError(t, err)
	var payload AmountRequest
	require.NoError(t, DecodeData(req.Data, &payload))
	assert.Equal(t, math.MaxInt, payload.Amount)
}
