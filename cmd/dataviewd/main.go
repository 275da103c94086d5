package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/dataview/bootstrap"
	"github.com/fulldump/dataview/configuration"
)

var banner = `
 ____        _       __     ___
|  _ \  __ _| |_ __ _\ \   / (_) _____      __
| | | |/ _' | __/ _' |\ \ / /| |/ _ \ \ /\ / /
| |_| | (_| | || (_| | \ V / | |  __/\ V  V /
|____/ \__,_|\__\__,_|  \_/  |_|\___| \_/\_/
                           version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(&c)
	start()
}
