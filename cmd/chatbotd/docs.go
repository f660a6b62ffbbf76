package main

// General API documentation for swaggo. Run swag against this package to
// regenerate docs/.
//
// @title           chatbotd API
// @version         1.0
// @description     HTTP front end over a locally loaded llama.cpp chat model.
//
// @BasePath  /
//
// @schemes http
