package services

// Services defined in this package:
// - AuthService: unified login across roles and the password reset flow
// - ImportService: the CSV batch import and enrollment reconciliation pipeline
// - PeopleService: teacher and student read operations
// - ClassService: class listing, detail and teacher assignment
// - AnnouncementService: class-scoped announcements
// - MaterialService: study material metadata
