package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
	"github.com/dmitrymomot/mailout/pkg/mailqueue/s3"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awss3.GetObjectOutput), args.Error(1)
}

func (m *MockClient) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awss3.PutObjectOutput), args.Error(1)
}

func newTestStore(t *testing.T, client s3.Client) *s3.Store {
	t.Helper()

	store, err := s3.New(context.Background(), s3.Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}, s3.WithClient(client))
	require.NoError(t, err)

	return store
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()

		store, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
		require.ErrorIs(t, err, s3.ErrInvalidConfig)
		assert.Nil(t, store)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()

		store, err := s3.New(context.Background(), s3.Config{Bucket: "test-bucket"})
		require.ErrorIs(t, err, s3.ErrInvalidConfig)
		assert.Nil(t, store)
	})

	t.Run("with mock client", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		store := newTestStore(t, mockClient)
		require.NotNil(t, store)

		mockClient.AssertExpectations(t)
	})
}

func TestReadSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("missing object reports no snapshot", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		store := newTestStore(t, mockClient)

		data, err := store.ReadSnapshot(context.Background())
		require.ErrorIs(t, err, mailqueue.ErrNoSnapshot)
		assert.Nil(t, data)

		mockClient.AssertExpectations(t)
	})

	t.Run("generic NoSuchKey code reports no snapshot", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "key missing"})

		store := newTestStore(t, mockClient)

		_, err := store.ReadSnapshot(context.Background())
		require.ErrorIs(t, err, mailqueue.ErrNoSnapshot)

		mockClient.AssertExpectations(t)
	})

	t.Run("returns object body", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("GetObject",
			mock.Anything,
			mock.MatchedBy(func(params *awss3.GetObjectInput) bool {
				return params.Bucket != nil && *params.Bucket == "test-bucket" &&
					params.Key != nil && *params.Key == s3.DefaultKey
			}),
			mock.Anything,
		).Return(&awss3.GetObjectOutput{
			Body: io.NopCloser(bytes.NewReader([]byte("snapshot-bytes"))),
		}, nil)

		store := newTestStore(t, mockClient)

		data, err := store.ReadSnapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("snapshot-bytes"), data)

		mockClient.AssertExpectations(t)
	})

	t.Run("wraps transport errors", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset"))

		store := newTestStore(t, mockClient)

		_, err := store.ReadSnapshot(context.Background())
		require.ErrorIs(t, err, s3.ErrReadFailed)
		assert.Contains(t, err.Error(), "connection reset")

		mockClient.AssertExpectations(t)
	})
}

func TestWriteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("uploads snapshot object", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *awss3.PutObjectInput) bool {
				if params.Bucket == nil || *params.Bucket != "test-bucket" {
					return false
				}
				if params.Key == nil || *params.Key != "custom/snap.json" {
					return false
				}
				if params.ContentType == nil || *params.ContentType != "application/json" {
					return false
				}
				body, err := io.ReadAll(params.Body)
				return err == nil && bytes.Equal(body, []byte("payload"))
			}),
			mock.Anything,
		).Return(&awss3.PutObjectOutput{}, nil)

		store, err := s3.New(context.Background(), s3.Config{
			Bucket: "test-bucket",
			Region: "us-east-1",
			Key:    "custom/snap.json",
		}, s3.WithClient(mockClient))
		require.NoError(t, err)

		require.NoError(t, store.WriteSnapshot(context.Background(), []byte("payload")))

		mockClient.AssertExpectations(t)
	})

	t.Run("wraps upload errors", func(t *testing.T) {
		t.Parallel()

		mockClient := new(MockClient)
		mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		store := newTestStore(t, mockClient)

		err := store.WriteSnapshot(context.Background(), []byte("payload"))
		require.ErrorIs(t, err, s3.ErrWriteFailed)
		assert.Contains(t, err.Error(), "AccessDenied")

		mockClient.AssertExpectations(t)
	})
}
