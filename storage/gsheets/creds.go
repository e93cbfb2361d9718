package gsheets

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/sheets/v4"

	"github.com/ecoone/campus/core"
	coresheet "github.com/ecoone/campus/core/sheet"
)

// credentials resolves the service account payload. An inline payload wins
// over the credential file; env transport tends to flatten the private key's
// newlines, so those are restored before use.
func credentials(conf core.SheetsConfig) ([]byte, error) {
	if conf.CredentialsJSON != "" {
		return repairPrivateKey([]byte(conf.CredentialsJSON))
	}
	if conf.CredentialsFile != "" {
		data, err := ioutil.ReadFile(conf.CredentialsFile)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(coresheet.ErrAuthenticationFailed, "credentials file not found: "+conf.CredentialsFile)
			}
			return nil, errors.Wrap(err, "reading credentials file")
		}
		return data, nil
	}
	return nil, errors.Wrap(coresheet.ErrAuthenticationFailed, "no credentials configured")
}

func repairPrivateKey(data []byte) ([]byte, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(coresheet.ErrAuthenticationFailed, "invalid credentials payload: "+err.Error())
	}
	if pk, ok := payload["private_key"].(string); ok && strings.Contains(pk, `\n`) {
		payload["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
		return json.Marshal(payload)
	}
	return data, nil
}

func jwtConfigFromJSON(data []byte) (*jwt.Config, error) {
	return google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
}
