package config

var LoadWithEnv = load
