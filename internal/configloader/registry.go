// Package configloader shares typed configuration between packages. The
// daemon and powerctl register their config structs here, and packages such
// as logging read their own section without importing the loader.
//
//	configloader.RegisterConfig(&Config{...})
//	cfg := configloader.MustGetConfig[*Config]()
package configloader

import (
	"fmt"
	"reflect"
	"sync"
)

// registry maps the reflect.Type of T to the registered T.
var registry sync.Map

func key[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterConfig stores cfg as the instance of T. Registering T twice panics.
func RegisterConfig[T any](cfg T) {
	if _, loaded := registry.LoadOrStore(key[T](), cfg); loaded {
		panic(fmt.Sprintf("config already registered for type %v", key[T]()))
	}
}

// ReplaceConfig stores cfg as the instance of T, registered or not.
func ReplaceConfig[T any](cfg T) {
	registry.Store(key[T](), cfg)
}

// TryGetConfig returns the instance of T and whether one is registered.
func TryGetConfig[T any]() (T, bool) {
	val, ok := registry.Load(key[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGetConfig is TryGetConfig that panics when T is not registered.
func MustGetConfig[T any]() T {
	cfg, ok := TryGetConfig[T]()
	if !ok {
		panic(fmt.Sprintf("no config registered for type %v", key[T]()))
	}
	return cfg
}
