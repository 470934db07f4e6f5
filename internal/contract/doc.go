// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contract provides input limits shared by spotbench commands.
//
// # Report Size
//
// Analysis reports are read fully into findings, so spotbench refuses
// reports above a size limit:
//
//	if res := contract.ValidateReportSize(info.Size()); !res.OK {
//	    return fmt.Errorf("%s", res.Message)
//	}
//
// The limit defaults to 256 MiB (DefaultMaxReportBytes) and can be changed
// with the SPOTBENCH_MAX_REPORT_BYTES environment variable:
//
//	export SPOTBENCH_MAX_REPORT_BYTES=1073741824  # 1 GiB
//
// Invalid or non-positive values are ignored.
package contract
