/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
package cmd

import (
	"fmt"

	"github.com/valpere/perevir/internal/translator"
)

// buildService constructs the translation backend to exercise. "local"
// is the self-hosted server the tool exists for; "google" is a cloud
// baseline to compare latencies against.
func buildService(name, endpoint string) (translator.TranslationService, error) {
	switch name {
	case "local":
		return translator.NewLocalService(endpoint), nil
	case "google":
		return translator.NewGoogleService(), nil
	default:
		return nil, fmt.Errorf("unknown service: %s", name)
	}
}
