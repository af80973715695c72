package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourstory/ourstory/pkg/types"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, message string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeCompleter) GetModel() string { return "test-model" }

type fakeChatLog struct {
	records []types.ChatRecord
	err     error
}

func (f *fakeChatLog) Append(ctx context.Context, record *types.ChatRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeChatLog) Recent(ctx context.Context, userID string, limit int) ([]types.ChatRecord, error) {
	return f.records, nil
}

func TestSendReturnsModelReply(t *testing.T) {
	completer := &fakeCompleter{reply: "hi there"}
	chatLog := &fakeChatLog{}
	svc := NewService(completer, chatLog)

	reply, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)

	assert.Equal(t, "hi there", reply.Reply)
	assert.Equal(t, "test-model", reply.Model)
	assert.False(t, reply.Timestamp.IsZero())
}

func TestSendEmptyMessage(t *testing.T) {
	svc := NewService(&fakeCompleter{reply: "unused"}, nil)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), "user-1", message)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
}

func TestSendFallsBackOnUpstreamError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream down")}
	chatLog := &fakeChatLog{}
	svc := NewService(completer, chatLog)

	reply, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)

	assert.Equal(t, FallbackReply, reply.Reply)
	assert.Equal(t, "test-model", reply.Model)
	assert.Empty(t, chatLog.records, "failed turns must not be recorded")
}

func TestSendRecordsConversation(t *testing.T) {
	completer := &fakeCompleter{reply: "hi there"}
	chatLog := &fakeChatLog{}
	svc := NewService(completer, chatLog)

	_, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)

	require.Len(t, chatLog.records, 1)
	record := chatLog.records[0]
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "hello", record.Message)
	assert.Equal(t, "hi there", record.Reply)
	assert.Equal(t, "test-model", record.Model)
}

func TestSendAnonymousUserNotRecorded(t *testing.T) {
	completer := &fakeCompleter{reply: "hi there"}
	chatLog := &fakeChatLog{}
	svc := NewService(completer, chatLog)

	reply, err := svc.Send(context.Background(), "", "hello")
	require.NoError(t, err)

	assert.Equal(t, "hi there", reply.Reply)
	assert.Empty(t, chatLog.records)
}

func TestSendSwallowsLogFailure(t *testing.T) {
	completer := &fakeCompleter{reply: "hi there"}
	chatLog := &fakeChatLog{err: errors.New("disk full")}
	svc := NewService(completer, chatLog)

	reply, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply.Reply)
}

func TestSendNilChatLog(t *testing.T) {
	svc := NewService(&fakeCompleter{reply: "hi there"}, nil)

	reply, err := svc.Send(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply.Reply)
}
