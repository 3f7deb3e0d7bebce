/*
Copyright © 2022 - 2026 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// provides a custom error interface and exit codes to use on nvm-prune
package error

//
// Provided exit codes for nvm-prune

// To make it easy to generate them you have to respect the structure:
//
// comment that explains the error
// const NamedConstant = ERRORCODE

// Unknown error
const Unknown = 1

// NVM_DIR is not set by any means
const NvmDirUnset = 10

// Error reading the configuration or the env-file
const ReadConfig = 11

// Error listing the installed node versions
const ScanVersions = 12

// Error reading the confirmation answer
const Confirmation = 13

// One or more versions could not be uninstalled
const UninstallFailed = 14

// Invalid flag or setting value
const InvalidSpec = 15
