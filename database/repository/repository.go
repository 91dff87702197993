package repository

import (
	bookingRepo "bookwise/database/repository/booking"
	userRepo "bookwise/database/repository/user"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

type ReminderStore = bookingRepo.ReminderStore

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo
