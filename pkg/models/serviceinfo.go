package models

type APIServiceInfo struct {
	Version   string
	BuildSHA  string
	BuildTime string
}

const HttpSourceHeader = "x-filterd-source"
