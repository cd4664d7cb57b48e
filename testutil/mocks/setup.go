package mocks

import (
	"go.uber.org/mock/gomock"
)

func SetupTransferer(t gomock.TestReporter) *MockTransferer {
	ctrl := gomock.NewController(t)
	return NewMockTransferer(ctrl)
}

func SetupCloner(t gomock.TestReporter) *MockCloner {
	ctrl := gomock.NewController(t)
	return NewMockCloner(ctrl)
}
