// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gridlines

var RoundSubdivisions = roundSubdivisions

const MaxDepth = maxDepth
