package doctor

import (
	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check with mockery-style expecters.
type MockCheck struct {
	mock.Mock
}

// NewMockCheck creates a MockCheck whose expectations are asserted when the
// test finishes.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MockCheck_Expecter struct {
	mock *mock.Mock
}

func (m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &m.Mock}
}

func (m *MockCheck) Name() string {
	ret := m.Called()
	return ret.String(0)
}

func (m *MockCheck) Category() string {
	ret := m.Called()
	return ret.String(0)
}

func (m *MockCheck) Run() *CheckResult {
	ret := m.Called()
	r, _ := ret.Get(0).(*CheckResult)
	return r
}

type MockCheck_Name_Call struct{ *mock.Call }

func (e *MockCheck_Expecter) Name() *MockCheck_Name_Call {
	return &MockCheck_Name_Call{Call: e.mock.On("Name")}
}

func (c *MockCheck_Name_Call) Return(name string) *MockCheck_Name_Call {
	c.Call.Return(name)
	return c
}

func (c *MockCheck_Name_Call) Maybe() *MockCheck_Name_Call {
	c.Call.Maybe()
	return c
}

type MockCheck_Run_Call struct{ *mock.Call }

func (e *MockCheck_Expecter) Run() *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: e.mock.On("Run")}
}

func (c *MockCheck_Run_Call) Return(result *CheckResult) *MockCheck_Run_Call {
	c.Call.Return(result)
	return c
}

type MockCheck_Category_Call struct{ *mock.Call }

func (e *MockCheck_Expecter) Category() *MockCheck_Category_Call {
	return &MockCheck_Category_Call{Call: e.mock.On("Category")}
}

func (c *MockCheck_Category_Call) Return(category string) *MockCheck_Category_Call {
	c.Call.Return(category)
	return c
}

func (c *MockCheck_Category_Call) Maybe() *MockCheck_Category_Call {
	c.Call.Maybe()
	return c
}
