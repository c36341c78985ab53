// Command token mints an access token for local development. It reads the
// same config file and flags as the server, so the secret matches.
//
//	token -user <user id> [-c server.yaml] [-s secret] [-t minutes]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/mediaup/internal/flagx"
	"github.com/dmitrijs2005/mediaup/internal/server/auth"
	"github.com/dmitrijs2005/mediaup/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	var userID string
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	fs.StringVar(&userID, "user", "", "user id to put in the token")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-user"}))

	if userID == "" {
		log.Fatal("-user is required")
	}

	tok, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(tok)
}
