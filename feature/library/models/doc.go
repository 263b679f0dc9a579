// Package models defines the per-user list table.
package models
