// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package fatal reports unrecoverable initialization errors.

Failures reported through Assert are not returned to the caller.  They are handed to the
installed Handler, which by default panics with an *Error.  Embedded deployments typically
install Exit so that the failure is logged and the process halts.
*/
package fatal
