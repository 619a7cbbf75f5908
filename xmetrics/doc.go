// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides a Prometheus registry that doubles as a go-kit metrics.Provider.
Components describe their metrics as modules of Metric descriptors, and accept the narrow
Adder and Observer interfaces so that go-kit, Prometheus, or discard metrics can be injected.
*/
package xmetrics
