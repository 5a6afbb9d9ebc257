/*
Copyright © 2026 vi013t

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

// Package main - enigma is a simulator for the Enigma family of rotor
// cipher machines, together with a statistical cracker that recovers the
// machine settings from ciphertext alone.
package main

import "github.com/vi013t/enigma/cmd"

func main() {
	cmd.Execute()
}
