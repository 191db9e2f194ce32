// Command mercado runs the market: an interactive shop session plus a few
// maintenance commands that work on the persisted state.
//
//	mercado                          # interactive session (same as `mercado shop`)
//	mercado products                 # print the catalog
//	mercado cart                     # print the saved cart
//	mercado seed [name]              # run catalog seeders
//	mercado state:export <path>      # copy the saved state to a disk
//	mercado state:import <path>      # replace the saved state from a disk
//
// Configuration comes from config/app.json, .env and the environment; see
// --config and --env.
package main
