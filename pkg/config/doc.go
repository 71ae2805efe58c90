// Package config provides client configuration and runtime state
// persistence.
//
// Configuration is a YAML file listing chat accounts with their
// credentials, primary channel, and event-log destination. Runtime
// session state (last connection timestamps per account) is persisted
// separately as JSON so it can survive client restarts without mixing
// operator-edited configuration with machine-written state.
package config
