// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rtostest

import (
	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/osal/rtos"
)

// Mock is a stretchr mock for rtos.API.
type Mock struct {
	mock.Mock
}

var _ rtos.API = (*Mock)(nil)

func (m *Mock) TickPeriodMs() float64 {
	return m.Called().Get(0).(float64)
}

func (m *Mock) OnTickPeriodMs(v float64) *mock.Call {
	return m.On("TickPeriodMs").Return(v)
}

func (m *Mock) TickCount() rtos.TickType {
	return m.Called().Get(0).(rtos.TickType)
}

func (m *Mock) OnTickCount(v rtos.TickType) *mock.Call {
	return m.On("TickCount").Return(v)
}

func (m *Mock) TaskDelay(ticks rtos.TickType) {
	m.Called(ticks)
}

func (m *Mock) OnTaskDelay(ticks rtos.TickType) *mock.Call {
	return m.On("TaskDelay", ticks)
}

func (m *Mock) SemaphoreCreateMutex() *rtos.Semaphore {
	s, _ := m.Called().Get(0).(*rtos.Semaphore)
	return s
}

func (m *Mock) OnSemaphoreCreateMutex(s *rtos.Semaphore) *mock.Call {
	return m.On("SemaphoreCreateMutex").Return(s)
}

func (m *Mock) SemaphoreTake(s *rtos.Semaphore, ticks rtos.TickType) rtos.BaseType {
	return m.Called(s, ticks).Get(0).(rtos.BaseType)
}

func (m *Mock) OnSemaphoreTake(s *rtos.Semaphore, ticks rtos.TickType, result rtos.BaseType) *mock.Call {
	return m.On("SemaphoreTake", s, ticks).Return(result)
}

func (m *Mock) SemaphoreGive(s *rtos.Semaphore) rtos.BaseType {
	return m.Called(s).Get(0).(rtos.BaseType)
}

func (m *Mock) OnSemaphoreGive(s *rtos.Semaphore, result rtos.BaseType) *mock.Call {
	return m.On("SemaphoreGive", s).Return(result)
}

func (m *Mock) SemaphoreDelete(s *rtos.Semaphore) {
	m.Called(s)
}

func (m *Mock) OnSemaphoreDelete(s *rtos.Semaphore) *mock.Call {
	return m.On("SemaphoreDelete", s)
}
